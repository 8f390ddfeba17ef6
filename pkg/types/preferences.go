package types

// Preferences is the last-used search and sort state, kept apart from task data.
type Preferences struct {
	SearchTerm string  `json:"search_term" mapstructure:"search_term"`
	SortBy     SortKey `json:"sort_by" mapstructure:"sort_by"`
}

// DefaultPreferences returns the record used when nothing is persisted.
func DefaultPreferences() Preferences {
	return Preferences{SearchTerm: "", SortBy: DefaultSortKey}
}

// Query returns the list query these preferences describe.
func (p Preferences) Query() ListQuery {
	return ListQuery{Search: p.SearchTerm, SortBy: p.SortBy}
}
