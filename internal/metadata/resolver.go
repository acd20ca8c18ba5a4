// Package metadata derives token descriptor URIs. A URI is a pure function of
// the global reveal configuration and the token id, never stored per token, so
// changing the base URI or flipping the reveal switch retargets every minted
// token at once.
package metadata

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/asaskevich/govalidator"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// SupplyReader is the slice of the ledger the resolver needs: a token id is
// resolvable exactly when it has been minted.
type SupplyReader interface {
	TotalMinted() uint64
}

// RoleChecker gates the reveal configuration setter.
type RoleChecker interface {
	RequireRole(role accesscontrol.Role, caller domain.Address) error
}

// Config is the reveal state. Pre-reveal URIs carry no suffix, which keeps the
// real metadata format obscured until the collection is revealed.
type Config struct {
	BaseURI  string
	Revealed bool
}

// Resolver derives and caches token URIs.
type Resolver struct {
	mu  sync.RWMutex
	cfg Config

	supply SupplyReader
	acl    RoleChecker
	cache  Cache
	logger *slog.Logger
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithCache(cache Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

func NewResolver(supply SupplyReader, acl RoleChecker, cfg Config, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:    cfg,
		supply: supply,
		acl:    acl,
		cache:  NoopCache{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the current reveal configuration.
func (r *Resolver) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// TokenURI resolves the descriptor URI for a minted token: baseURI + id before
// the reveal, baseURI + id + ".json" after it.
func (r *Resolver) TokenURI(ctx context.Context, id domain.TokenID) (string, error) {
	if uint64(id) >= r.supply.TotalMinted() {
		return "", dErrors.New(dErrors.CodeUnknownToken, "token "+id.String()+" has not been minted")
	}

	key := strconv.FormatUint(uint64(id), 10)
	if uri, ok := r.cache.Get(ctx, key); ok {
		return uri, nil
	}

	r.mu.RLock()
	uri := r.cfg.BaseURI + id.String()
	if r.cfg.Revealed {
		uri += ".json"
	}
	r.mu.RUnlock()

	r.cache.Set(ctx, key, uri)
	return uri, nil
}

// SetBaseTokenURI replaces the reveal configuration. Operator gated. Cached
// URIs are invalidated so the change is visible immediately for every token.
func (r *Resolver) SetBaseTokenURI(ctx context.Context, caller domain.Address, baseURI string, revealed bool) error {
	if err := r.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return err
	}
	if baseURI != "" && !govalidator.IsRequestURI(baseURI) {
		return dErrors.New(dErrors.CodeBadRequest, "base URI must be a valid URI")
	}

	r.mu.Lock()
	r.cfg = Config{BaseURI: baseURI, Revealed: revealed}
	r.mu.Unlock()

	r.cache.Invalidate(ctx)
	r.logger.InfoContext(ctx, "base token URI set", "base_uri", baseURI, "revealed", revealed, "by", caller.Hex())
	return nil
}
