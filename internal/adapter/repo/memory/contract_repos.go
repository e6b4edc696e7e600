package memory

import (
	"context"

	"warhold/internal/app/ports"
	"warhold/internal/domain/ledger"
)

// The aggregate repos hand out deep copies, so an aborted transaction never
// leaves partial mutations behind; only Save publishes state.

type WarriorRepo struct {
	store *Store
}

func NewWarriorRepo(store *Store) WarriorRepo {
	return WarriorRepo{store: store}
}

func (r WarriorRepo) Load(_ context.Context) (ledger.WarriorState, error) {
	if r.store.warrior == nil {
		return ledger.WarriorState{}, ports.ErrNotFound
	}
	return r.store.warrior.Clone(), nil
}

func (r WarriorRepo) Save(_ context.Context, state ledger.WarriorState, expectedVersion int64) error {
	if r.store.warrior == nil {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		cp := state.Clone()
		r.store.warrior = &cp
		return nil
	}
	if r.store.warrior.Version != expectedVersion {
		return ports.ErrConflict
	}
	cp := state.Clone()
	r.store.warrior = &cp
	return nil
}

type LandRepo struct {
	store *Store
}

func NewLandRepo(store *Store) LandRepo {
	return LandRepo{store: store}
}

func (r LandRepo) Load(_ context.Context) (ledger.LandState, error) {
	if r.store.land == nil {
		return ledger.LandState{}, ports.ErrNotFound
	}
	return r.store.land.Clone(), nil
}

func (r LandRepo) Save(_ context.Context, state ledger.LandState, expectedVersion int64) error {
	if r.store.land == nil {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		cp := state.Clone()
		r.store.land = &cp
		return nil
	}
	if r.store.land.Version != expectedVersion {
		return ports.ErrConflict
	}
	cp := state.Clone()
	r.store.land = &cp
	return nil
}

type ResourceRepo struct {
	store *Store
}

func NewResourceRepo(store *Store) ResourceRepo {
	return ResourceRepo{store: store}
}

func (r ResourceRepo) Load(_ context.Context) (ledger.ResourceState, error) {
	if r.store.resource == nil {
		return ledger.ResourceState{}, ports.ErrNotFound
	}
	return r.store.resource.Clone(), nil
}

func (r ResourceRepo) Save(_ context.Context, state ledger.ResourceState, expectedVersion int64) error {
	if r.store.resource == nil {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		cp := state.Clone()
		r.store.resource = &cp
		return nil
	}
	if r.store.resource.Version != expectedVersion {
		return ports.ErrConflict
	}
	cp := state.Clone()
	r.store.resource = &cp
	return nil
}
