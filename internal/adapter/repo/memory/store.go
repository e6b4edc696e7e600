package memory

import (
	"sync"

	"warhold/internal/domain/ledger"
)

// Store holds the three contract aggregates and the event log. The mutex,
// taken by the tx manager, is the serialization point for all mutations.
type Store struct {
	mu       sync.RWMutex
	warrior  *ledger.WarriorState
	land     *ledger.LandState
	resource *ledger.ResourceState
	events   []ledger.Event
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SeedWarrior(state ledger.WarriorState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := state.Clone()
	s.warrior = &cp
}

func (s *Store) SeedLand(state ledger.LandState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := state.Clone()
	s.land = &cp
}

func (s *Store) SeedResource(state ledger.ResourceState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := state.Clone()
	s.resource = &cp
}
