package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/kanban/internal/board"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

const (
	displayTime   = "2006-01-02 15:04"
	columnWidth   = 30
	maxTitleWidth = 48
)

// renderer binds lipgloss styles to the command's output so colour is only
// emitted when that output is a terminal.
type renderer struct {
	r       *lipgloss.Renderer
	header  lipgloss.Style
	column  lipgloss.Style
	dim     lipgloss.Style
	heading lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		r:      r,
		header: r.NewStyle().Bold(true),
		column: r.NewStyle().
			Width(columnWidth).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		dim:     r.NewStyle().Faint(true),
		heading: r.NewStyle().Bold(true).Underline(true),
	}
}

// printTask writes a single task in key/value form.
func printTask(w io.Writer, t *types.Task) {
	fmt.Fprintf(w, "ID:          %d\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	fmt.Fprintf(w, "Status:      %s\n", t.Status.Label())
	if t.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(w, "Created:     %s\n", formatDisplayTime(t.CreatedAt))
	fmt.Fprintf(w, "Updated:     %s\n", formatDisplayTime(t.UpdatedAt))
}

// printTaskTable writes tasks as a bordered table, one row per task.
func (rd *renderer) printTaskTable(w io.Writer, tasks []*types.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Status.Label(),
			truncate(t.Title, maxTitleWidth),
			formatDisplayTime(t.UpdatedAt),
		})
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STATUS", "TITLE", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return rd.header.Padding(0, 1)
			}
			return rd.r.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, tbl.String())
}

// printBoard writes the three columns side by side.
func (rd *renderer) printBoard(w io.Writer, snap board.Snapshot) {
	cols := make([]string, 0, len(snap.Columns))
	for _, c := range snap.Columns {
		var b strings.Builder
		b.WriteString(rd.heading.Render(fmt.Sprintf("%s (%d)", c.Title(), len(c.Tasks))))
		b.WriteString("\n")
		if len(c.Tasks) == 0 {
			b.WriteString(rd.dim.Render("empty"))
		}
		for i, t := range c.Tasks {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "#%d %s", t.ID, truncate(t.Title, columnWidth-6))
		}
		cols = append(cols, rd.column.Render(b.String()))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	filter := "none"
	if term := snap.Query.Term(); term != "" {
		filter = strconv.Quote(term)
	}
	fmt.Fprintln(w, rd.dim.Render(fmt.Sprintf("search: %s  sort: %s  tasks: %d", filter, snap.Query.SortBy, snap.Total())))
}

func formatDisplayTime(t time.Time) string {
	return t.Local().Format(displayTime)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
