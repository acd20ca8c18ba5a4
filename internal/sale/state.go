package sale

import (
	"context"
	"log/slog"
	"math/big"
	"sync"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// RoleChecker is the slice of the access-control registry the sale state
// needs for gating its setters.
type RoleChecker interface {
	RequireRole(role accesscontrol.Role, caller domain.Address) error
}

// TierConfig is the externally visible configuration of one tier.
type TierConfig struct {
	Root         domain.Hash
	Price        *big.Int
	MaxPerWallet int
}

type tierState struct {
	root         domain.Hash
	price        *big.Int
	maxPerWallet int
}

// Params seeds the sale configuration at construction.
type Params struct {
	CommunityPrice *big.Int
	PublicPrice    *big.Int
	MaxPerWallet   map[Tier]int
	MaxMintPublic  int
}

// State is the sale phase plus tier configuration. Reads are concurrent;
// setters are Operator-gated and atomic under the internal lock.
type State struct {
	mu            sync.RWMutex
	active        Phase
	tiers         map[Tier]*tierState
	publicPrice   *big.Int
	maxMintPublic int

	acl    RoleChecker
	logger *slog.Logger
}

type Option func(*State)

func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// New builds the sale state. The sale starts Closed with all tier roots
// unset, so no mint path is open until an Operator configures one.
func New(acl RoleChecker, params Params, opts ...Option) *State {
	s := &State{
		active:        PhaseClosed,
		tiers:         make(map[Tier]*tierState, 3),
		publicPrice:   bigCopy(params.PublicPrice),
		maxMintPublic: params.MaxMintPublic,
		acl:           acl,
		logger:        slog.Default(),
	}
	for _, tier := range Tiers() {
		s.tiers[tier] = &tierState{
			price:        bigCopy(params.CommunityPrice),
			maxPerWallet: params.MaxPerWallet[tier],
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveSale reports the current phase.
func (s *State) ActiveSale() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActiveSale switches the phase. Operator-gated; effective immediately.
func (s *State) SetActiveSale(ctx context.Context, caller domain.Address, phase Phase) error {
	if err := s.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}

	s.mu.Lock()
	previous := s.active
	s.active = phase
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "sale phase changed",
		"from", previous.String(),
		"to", phase.String(),
		"by", caller.Hex(),
	)
	return nil
}

// TierRoot returns the committed Merkle root for a tier; the zero hash means
// the tier is closed to everyone.
func (s *State) TierRoot(tier Tier) domain.Hash {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.tiers[tier]; t != nil {
		return t.root
	}
	return domain.ZeroHash
}

// SetTierRoot replaces a tier's Merkle root. Changing a root mid-sale does
// not touch already-issued tokens; it only affects subsequent proof checks.
func (s *State) SetTierRoot(ctx context.Context, caller domain.Address, tier Tier, root domain.Hash) error {
	if err := s.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}

	s.mu.Lock()
	t, ok := s.tiers[tier]
	if !ok {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeBadRequest, "invalid tier: "+string(tier))
	}
	t.root = root
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "tier root set", "tier", string(tier), "root", root.Hex(), "by", caller.Hex())
	return nil
}

// TierPrice returns the unit price for a community tier, in wei.
func (s *State) TierPrice(tier Tier) *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.tiers[tier]; t != nil {
		return bigCopy(t.price)
	}
	return new(big.Int)
}

// SetTierPrice updates a tier's unit price.
func (s *State) SetTierPrice(ctx context.Context, caller domain.Address, tier Tier, price *big.Int) error {
	if err := s.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}
	if price == nil || price.Sign() < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "price must be a non-negative wei amount")
	}

	s.mu.Lock()
	t, ok := s.tiers[tier]
	if !ok {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeBadRequest, "invalid tier: "+string(tier))
	}
	t.price = bigCopy(price)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "tier price set", "tier", string(tier), "price_wei", price.String(), "by", caller.Hex())
	return nil
}

// TierMaxPerWallet returns a tier's per-wallet mint maximum, which also
// bounds the amount of a single mint request.
func (s *State) TierMaxPerWallet(tier Tier) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.tiers[tier]; t != nil {
		return t.maxPerWallet
	}
	return 0
}

// SetTierMaxPerWallet updates a tier's per-wallet mint maximum.
func (s *State) SetTierMaxPerWallet(ctx context.Context, caller domain.Address, tier Tier, max int) error {
	if err := s.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}
	if max < 1 {
		return dErrors.New(dErrors.CodeBadRequest, "per-wallet maximum must be at least 1")
	}

	s.mu.Lock()
	t, ok := s.tiers[tier]
	if !ok {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeBadRequest, "invalid tier: "+string(tier))
	}
	t.maxPerWallet = max
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "tier max per wallet set", "tier", string(tier), "max", max, "by", caller.Hex())
	return nil
}

// PublicPrice returns the public sale unit price in wei.
func (s *State) PublicPrice() *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bigCopy(s.publicPrice)
}

// SetPublicPrice updates the public sale unit price.
func (s *State) SetPublicPrice(ctx context.Context, caller domain.Address, price *big.Int) error {
	if err := s.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}
	if price == nil || price.Sign() < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "price must be a non-negative wei amount")
	}

	s.mu.Lock()
	s.publicPrice = bigCopy(price)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "public price set", "price_wei", price.String(), "by", caller.Hex())
	return nil
}

// MaxMintPublic returns the cumulative per-wallet maximum for the public sale.
func (s *State) MaxMintPublic() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxMintPublic
}

// SetMaxMintPublic updates the public per-wallet maximum.
func (s *State) SetMaxMintPublic(ctx context.Context, caller domain.Address, max int) error {
	if err := s.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}
	if max < 1 {
		return dErrors.New(dErrors.CodeBadRequest, "per-wallet maximum must be at least 1")
	}

	s.mu.Lock()
	s.maxMintPublic = max
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "public max per wallet set", "max", max, "by", caller.Hex())
	return nil
}

// Tier returns a copy of a tier's full configuration.
func (s *State) Tier(tier Tier) (TierConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tiers[tier]
	if !ok {
		return TierConfig{}, dErrors.New(dErrors.CodeBadRequest, "invalid tier: "+string(tier))
	}
	return TierConfig{Root: t.root, Price: bigCopy(t.price), MaxPerWallet: t.maxPerWallet}, nil
}

func bigCopy(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
