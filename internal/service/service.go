// Package service defines the backend-agnostic interface for board operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a list, card or label does not exist.
var ErrNotFound = errors.New("not found")

// ErrAmbiguous is returned when a name or reference matches more than one item.
var ErrAmbiguous = errors.New("ambiguous")

// ErrUnauthorized is returned when Trello rejects the key or token.
var ErrUnauthorized = errors.New("unauthorized")

// Service defines the interface for board backend operations.
// All Trello API calls go through this interface.
// Commands never import the Trello SDK directly.
type Service interface {
	// Lists returns the open lists of the backlog board in board order.
	Lists(ctx context.Context) ([]List, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (List, error)

	// ListCards returns the open cards of a list.
	// Order is not guaranteed to follow Position.
	ListCards(ctx context.Context, listID string) ([]Card, error)

	// BoardCards returns every open card on the board.
	BoardCards(ctx context.Context) ([]Card, error)

	// Labels returns the labels defined on the board.
	Labels(ctx context.Context) ([]Label, error)

	// Comments returns the comments on a card.
	Comments(ctx context.Context, cardID string) ([]Comment, error)

	// CreateCard creates a card at the bottom of a list.
	CreateCard(ctx context.Context, listID string, card NewCard) (Card, error)

	// MoveCard moves a card to another list.
	MoveCard(ctx context.Context, cardID, listID string) error

	// AddComment adds a comment to a card.
	AddComment(ctx context.Context, cardID, text string) error

	// ArchiveCard closes a card. Archived cards drop out of every listing.
	ArchiveCard(ctx context.Context, cardID string) error

	// SetPosition sets the ordering position of a card within its list.
	SetPosition(ctx context.Context, cardID string, pos float64) error
}
