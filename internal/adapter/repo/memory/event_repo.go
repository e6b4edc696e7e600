package memory

import (
	"context"

	"warhold/internal/domain/ledger"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []ledger.Event) error {
	r.store.events = append(r.store.events, events...)
	return nil
}

func (r EventRepo) ListByAccount(_ context.Context, account ledger.Address, limit int) ([]ledger.Event, error) {
	out := []ledger.Event{}
	// Newest first.
	for i := len(r.store.events) - 1; i >= 0; i-- {
		e := r.store.events[i]
		if e.Account != account {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
