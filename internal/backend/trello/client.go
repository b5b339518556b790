// Package trello implements the service.Service interface using the Trello REST API.
package trello

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adlio/trello"
	log "github.com/sirupsen/logrus"

	"nj/internal/config"
	"nj/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// commentAction is the action type of a card comment.
	commentAction = "commentCard"
)

// Client implements service.Service on one Trello board.
type Client struct {
	api   *trello.Client
	board *trello.Board
}

// New creates a Trello client for the board named in cfg.
// Requires TRELLO_API_KEY and TRELLO_TOKEN.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.CheckCredentials(); err != nil {
		return nil, err
	}

	api := trello.NewClient(cfg.APIKey, cfg.Token)
	if cfg.Debug {
		api.Logger = log.StandardLogger()
	}

	return NewWithAPI(ctx, api, cfg.Board)
}

// NewWithAPI creates a client from a configured API client and resolves
// boardName among the open boards of the token's member.
func NewWithAPI(ctx context.Context, api *trello.Client, boardName string) (*Client, error) {
	c := &Client{api: api}

	board, err := c.findBoard(ctx, boardName)
	if err != nil {
		return nil, err
	}
	c.board = board

	log.WithFields(log.Fields{
		"board": board.Name,
		"id":    board.ID,
	}).Debug("resolved board")

	return c, nil
}

// BoardID returns the ID of the backlog board.
func (c *Client) BoardID() string {
	return c.board.ID
}

func (c *Client) findBoard(ctx context.Context, name string) (*trello.Board, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var boards []*trello.Board
	args := trello.Arguments{"filter": "open", "fields": "name,closed"}
	if err := c.api.WithContext(ctx).Get("members/me/boards", args, &boards); err != nil {
		return nil, wrapError(err)
	}

	want := strings.ToLower(strings.TrimSpace(name))
	var matches []*trello.Board
	for _, b := range boards {
		if !b.Closed && strings.ToLower(strings.TrimSpace(b.Name)) == want {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("board %q: %w", name, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("board %q: %w", name, service.ErrAmbiguous)
	}
}

// Lists returns the open lists of the board in board order.
func (c *Client) Lists(ctx context.Context) ([]service.List, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var lists []*trello.List
	path := fmt.Sprintf("boards/%s/lists", c.board.ID)
	if err := c.api.WithContext(ctx).Get(path, trello.Arguments{"filter": "open"}, &lists); err != nil {
		return nil, wrapError(err)
	}

	result := make([]service.List, 0, len(lists))
	for _, l := range lists {
		if l.Closed {
			continue
		}
		result = append(result, service.List{
			ID:       l.ID,
			Name:     l.Name,
			Position: float64(l.Pos),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})

	return result, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.List, error) {
	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	lists, err := c.Lists(ctx)
	if err != nil {
		return service.List{}, err
	}

	var matches []service.List
	for _, list := range lists {
		if strings.ToLower(strings.TrimSpace(list.Name)) == nameLower {
			matches = append(matches, list)
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

// ListCards returns the open cards of a list.
func (c *Client) ListCards(ctx context.Context, listID string) ([]service.Card, error) {
	return c.cards(ctx, fmt.Sprintf("lists/%s/cards", listID))
}

// BoardCards returns the open cards of the board.
func (c *Client) BoardCards(ctx context.Context) ([]service.Card, error) {
	return c.cards(ctx, fmt.Sprintf("boards/%s/cards", c.board.ID))
}

func (c *Client) cards(ctx context.Context, path string) ([]service.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var cards []*trello.Card
	if err := c.api.WithContext(ctx).Get(path, trello.Arguments{"filter": "open"}, &cards); err != nil {
		return nil, wrapError(err)
	}

	result := make([]service.Card, 0, len(cards))
	for _, card := range cards {
		if card.Closed {
			continue
		}
		result = append(result, toCard(card))
	}

	log.WithFields(log.Fields{
		"path":  path,
		"cards": len(result),
	}).Debug("fetched cards")

	return result, nil
}

// Labels returns the labels defined on the board.
func (c *Client) Labels(ctx context.Context) ([]service.Label, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var labels []*trello.Label
	path := fmt.Sprintf("boards/%s/labels", c.board.ID)
	if err := c.api.WithContext(ctx).Get(path, trello.Defaults(), &labels); err != nil {
		return nil, wrapError(err)
	}

	result := make([]service.Label, 0, len(labels))
	for _, l := range labels {
		result = append(result, toLabel(l))
	}
	return result, nil
}

// Comments returns the comments on a card.
func (c *Client) Comments(ctx context.Context, cardID string) ([]service.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var actions []*trello.Action
	path := fmt.Sprintf("cards/%s/actions", cardID)
	if err := c.api.WithContext(ctx).Get(path, trello.Arguments{"filter": commentAction}, &actions); err != nil {
		return nil, wrapError(err)
	}

	var result []service.Comment
	for _, a := range actions {
		if a.Type != commentAction || a.Data == nil {
			continue
		}
		comment := service.Comment{
			ID:   a.ID,
			Text: a.Data.Text,
			Date: a.Date,
		}
		if a.MemberCreator != nil {
			comment.Author = a.MemberCreator.FullName
		}
		result = append(result, comment)
	}
	return result, nil
}

// CreateCard creates a card at the bottom of a list.
func (c *Client) CreateCard(ctx context.Context, listID string, card service.NewCard) (service.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	args := trello.Arguments{
		"name":   card.Name,
		"idList": listID,
		"pos":    "bottom",
	}
	if card.Due != nil {
		args["due"] = card.Due.UTC().Format(time.RFC3339)
	}
	if len(card.LabelIDs) > 0 {
		args["idLabels"] = strings.Join(card.LabelIDs, ",")
	}

	var created trello.Card
	if err := c.api.WithContext(ctx).Post("cards", args, &created); err != nil {
		return service.Card{}, wrapError(err)
	}

	log.WithFields(log.Fields{
		"card": created.ID,
		"list": listID,
	}).Debug("card created")

	return toCard(&created), nil
}

// MoveCard moves a card to another list.
func (c *Client) MoveCard(ctx context.Context, cardID, listID string) error {
	return c.updateCard(ctx, cardID, trello.Arguments{"idList": listID})
}

// ArchiveCard closes a card.
func (c *Client) ArchiveCard(ctx context.Context, cardID string) error {
	return c.updateCard(ctx, cardID, trello.Arguments{"closed": "true"})
}

// SetPosition sets the ordering position of a card within its list.
func (c *Client) SetPosition(ctx context.Context, cardID string, pos float64) error {
	return c.updateCard(ctx, cardID, trello.Arguments{"pos": strconv.FormatFloat(pos, 'f', -1, 64)})
}

func (c *Client) updateCard(ctx context.Context, cardID string, args trello.Arguments) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var updated trello.Card
	if err := c.api.WithContext(ctx).Put("cards/"+cardID, args, &updated); err != nil {
		return wrapError(err)
	}
	return nil
}

// AddComment adds a comment to a card.
func (c *Client) AddComment(ctx context.Context, cardID, text string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var action trello.Action
	path := fmt.Sprintf("cards/%s/actions/comments", cardID)
	if err := c.api.WithContext(ctx).Post(path, trello.Arguments{"text": text}, &action); err != nil {
		return wrapError(err)
	}
	return nil
}

func toCard(card *trello.Card) service.Card {
	result := service.Card{
		ID:       card.ID,
		Name:     card.Name,
		Desc:     card.Desc,
		ListID:   card.IDList,
		URL:      card.ShortURL,
		Due:      card.Due,
		Position: float64(card.Pos),
		Comments: card.Badges.Comments,
	}
	for _, l := range card.Labels {
		if l != nil {
			result.Labels = append(result.Labels, toLabel(l))
		}
	}
	return result
}

func toLabel(l *trello.Label) service.Label {
	return service.Label{
		ID:    l.ID,
		Name:  l.Name,
		Color: l.Color,
	}
}

// wrapError maps API errors onto service errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if trello.IsPermissionDenied(err) || strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("%w: Trello rejected the key or token (check %s and %s)",
			service.ErrUnauthorized, config.EnvAPIKey, config.EnvToken)
	}

	if trello.IsNotFound(err) || strings.Contains(errStr, "404") {
		return fmt.Errorf("%w: %v", service.ErrNotFound, err)
	}

	return err
}
