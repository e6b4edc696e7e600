package ports

import (
	"context"

	"warhold/internal/domain/ledger"
)

// Aggregate repositories hand out a private copy of the contract state and
// save it back under an optimistic version check. Save with expectedVersion
// 0 creates the aggregate; a stale version yields ErrConflict.

type WarriorRepository interface {
	Load(ctx context.Context) (ledger.WarriorState, error)
	Save(ctx context.Context, state ledger.WarriorState, expectedVersion int64) error
}

type LandRepository interface {
	Load(ctx context.Context) (ledger.LandState, error)
	Save(ctx context.Context, state ledger.LandState, expectedVersion int64) error
}

type ResourceRepository interface {
	Load(ctx context.Context) (ledger.ResourceState, error)
	Save(ctx context.Context, state ledger.ResourceState, expectedVersion int64) error
}

type EventRepository interface {
	Append(ctx context.Context, events []ledger.Event) error
	ListByAccount(ctx context.Context, account ledger.Address, limit int) ([]ledger.Event, error)
}
