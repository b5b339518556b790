// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"nj/internal/due"
	"nj/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// CommentTimeLayout is the timestamp layout of comments in card detail.
	CommentTimeLayout = "2006-01-02 15:04:05"
)

// Formatter renders cards, lists and labels for one invocation.
// Due labels are relative to Now and shown in Loc.
type Formatter struct {
	Color bool
	Now   time.Time
	Loc   *time.Location
}

// NewFormatter creates a Formatter. A nil loc means local time.
func NewFormatter(color bool, now time.Time, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{Color: color, Now: now, Loc: loc}
}

// Card formats a card summary line.
// Format: "{ID3} {DUE} {NAME}[ ({COMMENTS})]\n"
func (f *Formatter) Card(w io.Writer, card service.Card) {
	line := f.render(StyleID, card.ShortID()) + " " + f.DueLabel(card.Due) + " " + normalizeTitle(card.Name)
	if card.Comments > 0 {
		line += " " + f.render(StyleComments, fmt.Sprintf("(%d)", card.Comments))
	}
	fmt.Fprintln(w, line)
}

// ListHeader formats a list section header.
func (f *Formatter) ListHeader(w io.Writer, name string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, normalizeTitle(name))
	fmt.Fprintln(w, ListSeparator)
}

// ListName formats a list name for the lists command.
func (f *Formatter) ListName(w io.Writer, list service.List) {
	fmt.Fprintln(w, normalizeTitle(list.Name))
}

// Label formats a label name in its board color.
func (f *Formatter) Label(w io.Writer, label service.Label) {
	fmt.Fprintln(w, f.LabelName(label))
}

// LabelName renders a label name in its board color.
func (f *Formatter) LabelName(label service.Label) string {
	name := label.Name
	if strings.TrimSpace(name) == "" {
		name = "(" + label.Color + ")"
	}
	return f.render(lipgloss.NewStyle().Foreground(LabelColor(label.Color)), name)
}

// CardDetail formats a card with its due date, labels, description
// and comments, newest comment first.
func (f *Formatter) CardDetail(w io.Writer, card service.Card, comments []service.Comment) {
	fmt.Fprintln(w, f.render(StyleTitle, normalizeTitle(card.Name)))
	fmt.Fprintf(w, "Due: %s\n", f.DueLabel(card.Due))

	if len(card.Labels) > 0 {
		names := make([]string, len(card.Labels))
		for i, l := range card.Labels {
			names[i] = f.LabelName(l)
		}
		fmt.Fprintf(w, "Labels: %s\n", strings.Join(names, ", "))
	}

	if desc := strings.TrimSpace(card.Desc); desc != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, desc)
	}

	sorted := make([]service.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > 0 {
		fmt.Fprintln(w)
	}
	for _, c := range sorted {
		stamp := c.Date.In(f.location()).Format(CommentTimeLayout)
		fmt.Fprintf(w, "%s %s\n", f.render(StyleDate, stamp), f.render(StyleText, c.Text))
	}
}

// DueLabel returns the colored due label of a card.
func (f *Formatter) DueLabel(cardDue *time.Time) string {
	loc := f.location()
	return f.render(DueStyle(due.Classify(cardDue, f.Now, loc)), due.Format(cardDue, f.Now, loc))
}

func (f *Formatter) location() *time.Location {
	if f.Loc == nil {
		return time.Local
	}
	return f.Loc
}

// normalizeTitle normalizes a card or list name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
