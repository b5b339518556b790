package commands

import (
	"context"
	"errors"
	"testing"

	"nj/internal/service"
	"nj/internal/testutil"
)

func TestParseCardRef_Suffix(t *testing.T) {
	ref, err := ParseCardRef([]string{"a1f"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "a1f" {
		t.Errorf("expected ref %q, got %q", "a1f", ref)
	}
}

func TestParseCardRef_LowersCase(t *testing.T) {
	ref, err := ParseCardRef([]string{" A1F "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "a1f" {
		t.Errorf("expected ref %q, got %q", "a1f", ref)
	}
}

func TestParseCardRef_NotHex_Error(t *testing.T) {
	_, err := ParseCardRef([]string{"xyz"})
	if err == nil {
		t.Fatal("expected error for non-hex ref")
	}
	expectedMsg := "invalid card reference: xyz"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseCardRef_NoArgs_Error(t *testing.T) {
	_, err := ParseCardRef([]string{})
	if err != ErrCardRefRequired {
		t.Errorf("expected ErrCardRefRequired, got %v", err)
	}

	_, err = ParseCardRef([]string{"  "})
	if err != ErrCardRefRequired {
		t.Errorf("expected ErrCardRefRequired for blank ref, got %v", err)
	}
}

func TestFindCard(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("l1", "Inbox")
	svc.AddCard(service.Card{ID: "5f00000000000000000000aa", Name: "one", ListID: "l1"})
	svc.AddCard(service.Card{ID: "5f00000000000000000001ab", Name: "two", ListID: "l1"})
	svc.AddCard(service.Card{ID: "5f00000000000000000002ab", Name: "three", ListID: "l1"})

	card, err := FindCard(context.Background(), svc, "0aa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Name != "one" {
		t.Errorf("expected card %q, got %q", "one", card.Name)
	}

	card, err = FindCard(context.Background(), svc, "1ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Name != "two" {
		t.Errorf("expected card %q, got %q", "two", card.Name)
	}

	_, err = FindCard(context.Background(), svc, "ab")
	if !errors.Is(err, service.ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}

	_, err = FindCard(context.Background(), svc, "fff")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindCard_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.BoardCardsErr = errors.New("boom")

	_, err := FindCard(context.Background(), svc, "abc")
	if err == nil || err.Error() != "boom" {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&ListCmd{}); err == nil {
		t.Error("expected error registering a command twice")
	}

	cmd, ok := r.Find("ls")
	if !ok || cmd.Name() != "list" {
		t.Errorf("expected alias ls to find list, got %v", cmd)
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 command, got %d", len(r.All()))
	}
}
