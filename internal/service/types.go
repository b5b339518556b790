// Package service defines the backend-agnostic interface for board operations.
package service

import "time"

// Card represents a single card on the backlog board.
type Card struct {
	ID       string
	Name     string
	Desc     string
	ListID   string
	URL      string
	Due      *time.Time // nil when unscheduled
	Position float64
	Labels   []Label
	Comments int // comment count as reported by the board
}

// List represents a board list (column).
type List struct {
	ID       string
	Name     string
	Position float64
}

// Label represents a board label.
type Label struct {
	ID    string
	Name  string
	Color string // Trello color name, empty for colorless labels
}

// Comment represents a comment on a card.
type Comment struct {
	ID     string
	Text   string
	Author string
	Date   time.Time
}

// NewCard holds the fields for a card being created.
type NewCard struct {
	Name     string
	Due      *time.Time
	LabelIDs []string
}

// ShortID returns the last three characters of the card ID, used as the
// card reference on the command line.
func (c Card) ShortID() string {
	if len(c.ID) <= 3 {
		return c.ID
	}
	return c.ID[len(c.ID)-3:]
}
