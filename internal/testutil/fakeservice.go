// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"nj/internal/service"
)

// PositionStep is the gap the fake leaves between appended cards, as Trello does.
const PositionStep = 16384

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	lists    []service.List
	cards    []service.Card
	labels   []service.Label
	comments map[string][]service.Comment // cardID -> comments
	nextID   int

	// PositionUpdates records every SetPosition call in order.
	PositionUpdates []PositionUpdate

	// Error injection for testing
	ListsErr       error
	ResolveListErr error
	ListCardsErr   map[string]error // listID -> error
	BoardCardsErr  error
	LabelsErr      error
	CommentsErr    error
	CreateCardErr  error
	MoveCardErr    error
	AddCommentErr  error
	ArchiveCardErr error
	SetPositionErr error
}

// PositionUpdate is one recorded SetPosition call.
type PositionUpdate struct {
	CardID   string
	Position float64
}

// NewFakeService creates a new empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		comments:     make(map[string][]service.Comment),
		ListCardsErr: make(map[string]error),
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.List{ID: id, Name: name, Position: float64(len(f.lists)+1) * PositionStep})
}

// AddCard adds a card as given. ListID must name an existing list.
func (f *FakeService) AddCard(card service.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = append(f.cards, card)
}

// AddLabel adds a board label.
func (f *FakeService) AddLabel(id, name, color string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labels = append(f.labels, service.Label{ID: id, Name: name, Color: color})
}

// AddCommentFixture attaches an existing comment to a card.
func (f *FakeService) AddCommentFixture(cardID string, c service.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[cardID] = append(f.comments[cardID], c)
	f.bumpComments(cardID)
}

// Card returns the current state of a card by full ID.
func (f *FakeService) Card(id string) (service.Card, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.cards {
		if c.ID == id {
			return c, true
		}
	}
	return service.Card{}, false
}

// Lists implements service.Service.
func (f *FakeService) Lists(ctx context.Context) ([]service.List, error) {
	if f.ListsErr != nil {
		return nil, f.ListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.List, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.List, error) {
	if f.ResolveListErr != nil {
		return service.List{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.List
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Name)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.List{}, fmt.Errorf("list %q: %w", name, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return service.List{}, fmt.Errorf("list %q: %w", name, service.ErrAmbiguous)
	}
}

// ListCards implements service.Service.
func (f *FakeService) ListCards(ctx context.Context, listID string) ([]service.Card, error) {
	if err, ok := f.ListCardsErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.hasList(listID) {
		return nil, service.ErrNotFound
	}

	var result []service.Card
	for _, c := range f.cards {
		if c.ListID == listID {
			result = append(result, c)
		}
	}
	return result, nil
}

// BoardCards implements service.Service.
func (f *FakeService) BoardCards(ctx context.Context) ([]service.Card, error) {
	if f.BoardCardsErr != nil {
		return nil, f.BoardCardsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Card, len(f.cards))
	copy(result, f.cards)
	return result, nil
}

// Labels implements service.Service.
func (f *FakeService) Labels(ctx context.Context) ([]service.Label, error) {
	if f.LabelsErr != nil {
		return nil, f.LabelsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Label, len(f.labels))
	copy(result, f.labels)
	return result, nil
}

// Comments implements service.Service.
func (f *FakeService) Comments(ctx context.Context, cardID string) ([]service.Comment, error) {
	if f.CommentsErr != nil {
		return nil, f.CommentsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Comment, len(f.comments[cardID]))
	copy(result, f.comments[cardID])
	return result, nil
}

// CreateCard implements service.Service.
func (f *FakeService) CreateCard(ctx context.Context, listID string, card service.NewCard) (service.Card, error) {
	if f.CreateCardErr != nil {
		return service.Card{}, f.CreateCardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasList(listID) {
		return service.Card{}, service.ErrNotFound
	}

	var labels []service.Label
	for _, id := range card.LabelIDs {
		for _, l := range f.labels {
			if l.ID == id {
				labels = append(labels, l)
			}
		}
	}

	bottom := 0.0
	for _, c := range f.cards {
		if c.ListID == listID && c.Position > bottom {
			bottom = c.Position
		}
	}

	f.nextID++
	created := service.Card{
		ID:       fmt.Sprintf("new%06d", f.nextID),
		Name:     card.Name,
		ListID:   listID,
		Due:      card.Due,
		Position: bottom + PositionStep,
		Labels:   labels,
	}
	f.cards = append(f.cards, created)
	return created, nil
}

// MoveCard implements service.Service.
func (f *FakeService) MoveCard(ctx context.Context, cardID, listID string) error {
	if f.MoveCardErr != nil {
		return f.MoveCardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasList(listID) {
		return service.ErrNotFound
	}
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].ListID = listID
			return nil
		}
	}
	return service.ErrNotFound
}

// AddComment implements service.Service.
func (f *FakeService) AddComment(ctx context.Context, cardID, text string) error {
	if f.AddCommentErr != nil {
		return f.AddCommentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasCard(cardID) {
		return service.ErrNotFound
	}
	f.nextID++
	f.comments[cardID] = append(f.comments[cardID], service.Comment{
		ID:   fmt.Sprintf("comment%06d", f.nextID),
		Text: text,
	})
	f.bumpComments(cardID)
	return nil
}

// ArchiveCard implements service.Service.
func (f *FakeService) ArchiveCard(ctx context.Context, cardID string) error {
	if f.ArchiveCardErr != nil {
		return f.ArchiveCardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// SetPosition implements service.Service.
func (f *FakeService) SetPosition(ctx context.Context, cardID string, pos float64) error {
	if f.SetPositionErr != nil {
		return f.SetPositionErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].Position = pos
			f.PositionUpdates = append(f.PositionUpdates, PositionUpdate{CardID: cardID, Position: pos})
			return nil
		}
	}
	return service.ErrNotFound
}

func (f *FakeService) hasList(id string) bool {
	for _, l := range f.lists {
		if l.ID == id {
			return true
		}
	}
	return false
}

func (f *FakeService) hasCard(id string) bool {
	for _, c := range f.cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (f *FakeService) bumpComments(cardID string) {
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].Comments++
		}
	}
}
