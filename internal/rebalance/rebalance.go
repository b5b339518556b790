// Package rebalance reorders the cards of a list by due date by spreading
// new position values across the list's existing position range.
package rebalance

import (
	"sort"

	"nj/internal/service"
)

// Change is a new position for one card.
type Change struct {
	CardID   string
	Position float64
}

// Rebalance computes the position changes that order cards by due date,
// earliest first, with undated cards last. Cards with equal due dates keep
// their input order. Targets are spread evenly over [min, max] of the current
// positions, so the first card lands on min and the last on max. Cards that
// already sit on their target are left out of the result.
//
// Fewer than two cards, or cards that all share one position, yield no changes.
func Rebalance(cards []service.Card) []Change {
	n := len(cards)
	if n < 2 {
		return nil
	}

	minPos, maxPos := cards[0].Position, cards[0].Position
	for _, c := range cards[1:] {
		if c.Position < minPos {
			minPos = c.Position
		}
		if c.Position > maxPos {
			maxPos = c.Position
		}
	}

	var changes []Change
	for idx, c := range SortByDue(cards) {
		target := minPos + float64(idx)*(maxPos-minPos)/float64(n-1)
		if c.Position != target {
			changes = append(changes, Change{CardID: c.ID, Position: target})
		}
	}
	return changes
}

// SortByDue returns a copy of cards stable-sorted by due date, undated last.
func SortByDue(cards []service.Card) []service.Card {
	sorted := make([]service.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Due, sorted[j].Due
		if (a == nil) != (b == nil) {
			return a != nil
		}
		if a == nil {
			return false
		}
		return a.Before(*b)
	})
	return sorted
}
