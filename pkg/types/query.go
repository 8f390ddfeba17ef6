package types

import "strings"

// SortKey selects the ordering of List results.
type SortKey string

// Recognised sort keys. DefaultSortKey is used for anything else.
const (
	SortCreatedDesc SortKey = "created_desc"
	SortCreatedAsc  SortKey = "created_asc"
	SortUpdatedDesc SortKey = "updated_desc"
	SortUpdatedAsc  SortKey = "updated_asc"
	SortTitleAsc    SortKey = "title_asc"
	SortTitleDesc   SortKey = "title_desc"

	DefaultSortKey = SortCreatedDesc
)

// SortKeys lists the recognised sort keys.
func SortKeys() []SortKey {
	return []SortKey{
		SortCreatedDesc, SortCreatedAsc,
		SortUpdatedDesc, SortUpdatedAsc,
		SortTitleAsc, SortTitleDesc,
	}
}

// Valid reports whether k is a recognised sort key.
func (k SortKey) Valid() bool {
	for _, s := range SortKeys() {
		if k == s {
			return true
		}
	}
	return false
}

// OrDefault returns k, or DefaultSortKey when k is not recognised.
func (k SortKey) OrDefault() SortKey {
	if k.Valid() {
		return k
	}
	return DefaultSortKey
}

// ListQuery filters and orders a task listing. The zero value lists every
// task newest first.
type ListQuery struct {
	// Search keeps tasks whose title or description contains the term.
	// Matching is a literal substring match, case-insensitive for ASCII.
	Search string
	SortBy SortKey
}

// Term returns the trimmed search term; empty means no filter.
func (q ListQuery) Term() string {
	return strings.TrimSpace(q.Search)
}
