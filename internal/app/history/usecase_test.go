package history

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "warhold/internal/adapter/repo/memory"
	"warhold/internal/domain/ledger"
)

const (
	alice = ledger.Address("0xa11ce")
	bob   = ledger.Address("0xb0b")
)

func seedEvents(t *testing.T, store *memrepo.Store, n int) {
	t.Helper()
	repo := memrepo.NewEventRepo(store)
	for i := 0; i < n; i++ {
		err := repo.Append(context.Background(), []ledger.Event{{
			Type:       ledger.EventWarriorMinted,
			Account:    alice,
			OccurredAt: time.Unix(1700000000+int64(i), 0),
			Payload:    map[string]any{"token_id": uint64(i)},
		}})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestExecute_NewestFirst(t *testing.T) {
	store := memrepo.NewStore()
	seedEvents(t, store, 3)
	uc := UseCase{Events: memrepo.NewEventRepo(store)}

	resp, err := uc.Execute(context.Background(), Request{Account: alice})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(resp.Events))
	}
	if !resp.Events[0].OccurredAt.After(resp.Events[2].OccurredAt) {
		t.Fatalf("events must be newest first: %+v", resp.Events)
	}
}

func TestExecute_LimitAndDefault(t *testing.T) {
	store := memrepo.NewStore()
	seedEvents(t, store, 60)
	uc := UseCase{Events: memrepo.NewEventRepo(store)}

	resp, err := uc.Execute(context.Background(), Request{Account: alice, Limit: 5})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(resp.Events))
	}

	resp, err = uc.Execute(context.Background(), Request{Account: alice})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != defaultLimit {
		t.Fatalf("expected default limit %d, got %d", defaultLimit, len(resp.Events))
	}
}

func TestExecute_UnknownAccountIsEmpty(t *testing.T) {
	store := memrepo.NewStore()
	seedEvents(t, store, 2)
	uc := UseCase{Events: memrepo.NewEventRepo(store)}

	resp, err := uc.Execute(context.Background(), Request{Account: bob})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Events == nil || len(resp.Events) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", resp.Events)
	}
}

func TestExecute_RejectsEmptyAccount(t *testing.T) {
	uc := UseCase{Events: memrepo.NewEventRepo(memrepo.NewStore())}
	if _, err := uc.Execute(context.Background(), Request{Account: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
