package accesscontrol

import (
	"context"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// Store persists role grants and the designated owner so the registry can be
// rehydrated on restart. The registry keeps the authoritative copy in memory;
// writes go through the store first and fail the operation if they fail.
type Store interface {
	SaveGrant(ctx context.Context, role Role, wallet domain.Address) error
	DeleteGrant(ctx context.Context, role Role, wallet domain.Address) error
	ListGrants(ctx context.Context) (map[Role][]domain.Address, error)

	SaveOwner(ctx context.Context, owner domain.Address) error
	FindOwner(ctx context.Context) (domain.Address, bool, error)
}
