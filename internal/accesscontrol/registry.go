package accesscontrol

import (
	"context"
	"log/slog"
	"sync"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Registry answers role checks and applies admin-gated grant mutations. The
// in-memory grant map is authoritative for reads; mutations write through the
// store first so a persistence failure leaves no state change behind.
type Registry struct {
	mu     sync.RWMutex
	grants map[Role]map[domain.Address]struct{}
	owner  domain.Address

	store  Store
	logger *slog.Logger
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New builds a registry seeded with deployer as both Admin and the designated
// owner. Grants persisted from earlier runs are loaded on top; a previously
// transferred ownership wins over the deployer default.
func New(ctx context.Context, deployer domain.Address, store Store, opts ...Option) (*Registry, error) {
	r := &Registry{
		grants: make(map[Role]map[domain.Address]struct{}),
		owner:  deployer,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	stored, err := store.ListGrants(ctx)
	if err != nil {
		return nil, err
	}
	for role, wallets := range stored {
		for _, w := range wallets {
			r.put(role, w)
		}
	}

	if !r.has(RoleAdmin, deployer) {
		if err := store.SaveGrant(ctx, RoleAdmin, deployer); err != nil {
			return nil, err
		}
		r.put(RoleAdmin, deployer)
	}

	owner, ok, err := store.FindOwner(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		r.owner = owner
	} else if err := store.SaveOwner(ctx, deployer); err != nil {
		return nil, err
	}

	return r, nil
}

// HasRole reports whether wallet holds role explicitly or holds Admin.
func (r *Registry) HasRole(role Role, wallet domain.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.has(role, wallet) || r.has(RoleAdmin, wallet)
}

// RequireRole fails with the role's categorical error when HasRole is false.
// Gated operations call this as their first statement; it has no side effects.
func (r *Registry) RequireRole(role Role, caller domain.Address) error {
	if !r.HasRole(role, caller) {
		return dErrors.New(deniedCode(role), "caller "+caller.Hex()+" lacks role "+string(role))
	}
	return nil
}

// GrantRole grants role to wallet. Restricted to Admin callers.
func (r *Registry) GrantRole(ctx context.Context, caller domain.Address, role Role, wallet domain.Address) error {
	if err := r.RequireRole(RoleAdmin, caller); err != nil {
		return err
	}
	if err := r.store.SaveGrant(ctx, role, wallet); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "persist role grant", err)
	}

	r.mu.Lock()
	r.put(role, wallet)
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "role granted",
		"role", string(role),
		"wallet", wallet.Hex(),
		"granted_by", caller.Hex(),
	)
	return nil
}

// RevokeRole removes an explicit grant. Restricted to Admin callers. Revoking
// a role a wallet never held is a no-op, matching grant semantics.
func (r *Registry) RevokeRole(ctx context.Context, caller domain.Address, role Role, wallet domain.Address) error {
	if err := r.RequireRole(RoleAdmin, caller); err != nil {
		return err
	}
	if err := r.store.DeleteGrant(ctx, role, wallet); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "persist role revocation", err)
	}

	r.mu.Lock()
	delete(r.grants[role], wallet)
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "role revoked",
		"role", string(role),
		"wallet", wallet.Hex(),
		"revoked_by", caller.Hex(),
	)
	return nil
}

// Owner reports the designated owner wallet for marketplace compatibility
// queries. It is independent of the role system.
func (r *Registry) Owner() domain.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner
}

// TransferOwnership redesignates the owner wallet. Restricted to Admin.
func (r *Registry) TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error {
	if err := r.RequireRole(RoleAdmin, caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "owner cannot be the zero address")
	}
	if err := r.store.SaveOwner(ctx, newOwner); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "persist ownership transfer", err)
	}

	r.mu.Lock()
	r.owner = newOwner
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "ownership transferred", "owner", newOwner.Hex(), "by", caller.Hex())
	return nil
}

func (r *Registry) has(role Role, wallet domain.Address) bool {
	_, ok := r.grants[role][wallet]
	return ok
}

func (r *Registry) put(role Role, wallet domain.Address) {
	if r.grants[role] == nil {
		r.grants[role] = make(map[domain.Address]struct{})
	}
	r.grants[role][wallet] = struct{}{}
}
