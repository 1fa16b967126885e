package repos_test

import (
	"errors"
	"testing"

	"restockly/internal/apperr"
	"restockly/internal/domain"
	"restockly/internal/repos"
)

func TestSubscribeAllowsDuplicates(t *testing.T) {
	// The schema deliberately has no (shop, product, email) uniqueness:
	// two identical subscribes produce two independent PENDING rows.
	r := repos.NewSubscriptionRepo(memdb(t))

	a, err := r.Create(shop, pid1, "jo@example.com", "Jo", "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Create(shop, pid1, "jo@example.com", "Jo", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatal("duplicate subscribes must be independent rows")
	}
	if a.Status != domain.SubPending || b.Status != domain.SubPending {
		t.Fatalf("new subscriptions must be PENDING: %v %v", a.Status, b.Status)
	}

	subs, err := r.ListPending(shop, pid1)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Fatalf("want 2 pending rows, got %d", len(subs))
	}
}

func TestListPendingIsFIFO(t *testing.T) {
	db := memdb(t)
	r := repos.NewSubscriptionRepo(db)

	first, err := r.Create(shop, pid1, "first@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Create(shop, pid1, "second@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}
	// Backdate the first so ordering doesn't depend on timestamp granularity
	if _, err := db.Exec(`UPDATE subscriptions SET created_at='2020-01-01 00:00:00' WHERE public_id=?`, first.ID); err != nil {
		t.Fatal(err)
	}

	subs, err := r.ListPending(shop, pid1)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 || subs[0].ID != first.ID || subs[1].ID != second.ID {
		t.Fatalf("want earliest subscriber first, got %v", subs)
	}
}

func TestTerminalTransitions(t *testing.T) {
	r := repos.NewSubscriptionRepo(memdb(t))

	sub, err := r.Create(shop, pid1, "jo@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.MarkNotified(sub.ID); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.SubNotified || got.NotifiedAt == "" {
		t.Fatalf("want NOTIFIED with timestamp, got %+v", got)
	}

	// NOTIFIED is terminal: no further transitions
	if err := r.MarkNotified(sub.ID); !errors.Is(err, apperr.ErrTransition) {
		t.Fatalf("want invalid-transition error, got %v", err)
	}
	if err := r.MarkError(sub.ID); !errors.Is(err, apperr.ErrTransition) {
		t.Fatalf("want invalid-transition error, got %v", err)
	}

	// Notified rows leave the pending queue
	subs, err := r.ListPending(shop, pid1)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 0 {
		t.Fatalf("notified row still pending: %v", subs)
	}
}

func TestMarkErrorIsTerminal(t *testing.T) {
	r := repos.NewSubscriptionRepo(memdb(t))

	sub, err := r.Create(shop, pid1, "jo@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.MarkError(sub.ID); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.SubError || got.NotifiedAt != "" {
		t.Fatalf("want ERROR without notified timestamp, got %+v", got)
	}
	if err := r.MarkNotified(sub.ID); !errors.Is(err, apperr.ErrTransition) {
		t.Fatalf("want invalid-transition error, got %v", err)
	}
}

func TestMarkUnknownSubscription(t *testing.T) {
	r := repos.NewSubscriptionRepo(memdb(t))
	if err := r.MarkNotified("no-such-id"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for unknown id, got %v", err)
	}
}
