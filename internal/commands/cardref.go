package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nj/internal/service"
)

// ErrCardRefRequired indicates no card reference was provided.
var ErrCardRefRequired = errors.New("card reference required")

// ParseCardRef parses the card reference from the first argument.
// A reference is a trailing fragment of the card ID, usually its last three
// characters as printed by list. Trello IDs are hex, so anything else is
// rejected before a backend call.
func ParseCardRef(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", ErrCardRefRequired
	}

	ref := strings.ToLower(strings.TrimSpace(args[0]))
	if !isHex(ref) {
		return "", fmt.Errorf("invalid card reference: %s", args[0])
	}
	return ref, nil
}

// isHex returns true if s consists only of lowercase hex digits.
func isHex(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return s != ""
}

// FindCard finds the single open card on the board whose ID ends with ref.
// Returns an error wrapping service.ErrNotFound or service.ErrAmbiguous.
func FindCard(ctx context.Context, svc service.Service, ref string) (service.Card, error) {
	cards, err := svc.BoardCards(ctx)
	if err != nil {
		return service.Card{}, err
	}

	var matches []service.Card
	for _, c := range cards {
		if strings.HasSuffix(strings.ToLower(c.ID), ref) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return service.Card{}, fmt.Errorf("card %s: %w", ref, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return service.Card{}, fmt.Errorf("card %s matches %d cards: %w", ref, len(matches), service.ErrAmbiguous)
	}
}
