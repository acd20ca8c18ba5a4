package accesscontrol

import (
	"context"
	"sync"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// InMemoryStore backs the registry in tests and single-node development runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	grants   map[Role]map[domain.Address]struct{}
	owner    domain.Address
	hasOwner bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{grants: make(map[Role]map[domain.Address]struct{})}
}

func (s *InMemoryStore) SaveGrant(_ context.Context, role Role, wallet domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grants[role] == nil {
		s.grants[role] = make(map[domain.Address]struct{})
	}
	s.grants[role][wallet] = struct{}{}
	return nil
}

func (s *InMemoryStore) DeleteGrant(_ context.Context, role Role, wallet domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants[role], wallet)
	return nil
}

func (s *InMemoryStore) ListGrants(_ context.Context) (map[Role][]domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Role][]domain.Address, len(s.grants))
	for role, wallets := range s.grants {
		for w := range wallets {
			out[role] = append(out[role], w)
		}
	}
	return out, nil
}

func (s *InMemoryStore) SaveOwner(_ context.Context, owner domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = owner
	s.hasOwner = true
	return nil
}

func (s *InMemoryStore) FindOwner(_ context.Context) (domain.Address, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, s.hasOwner, nil
}
