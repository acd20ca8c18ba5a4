//go:build integration

package metadata_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/internal/metadata"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	"github.com/platform-web3/hypehaus-contract/pkg/testutil/containers"
)

type staticSupply uint64

func (s staticSupply) TotalMinted() uint64 { return uint64(s) }

type openRoles struct{}

func (openRoles) RequireRole(accesscontrol.Role, domain.Address) error { return nil }

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *metadata.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = metadata.NewRedisCache(s.redis.Client, slog.Default())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestSetThenGet() {
	ctx := context.Background()

	_, ok := s.cache.Get(ctx, "3")
	s.False(ok)

	s.cache.Set(ctx, "3", "ipfs://masked/3")

	value, ok := s.cache.Get(ctx, "3")
	s.True(ok)
	s.Equal("ipfs://masked/3", value)
}

// Invalidation bumps the generation counter, so entries written beforehand
// become unreachable without any key scan.
func (s *RedisCacheSuite) TestInvalidateDropsEntries() {
	ctx := context.Background()

	s.cache.Set(ctx, "0", "ipfs://masked/0")
	s.cache.Set(ctx, "1", "ipfs://masked/1")

	s.cache.Invalidate(ctx)

	_, ok := s.cache.Get(ctx, "0")
	s.False(ok)
	_, ok = s.cache.Get(ctx, "1")
	s.False(ok)

	// The new generation accepts fresh writes.
	s.cache.Set(ctx, "0", "ipfs://revealed/0.json")
	value, ok := s.cache.Get(ctx, "0")
	s.True(ok)
	s.Equal("ipfs://revealed/0.json", value)
}

func (s *RedisCacheSuite) TestResolverServesFromCacheUntilReveal() {
	ctx := context.Background()
	operator := domain.MustAddress("0x00000000000000000000000000000000000000c1")

	resolver := metadata.NewResolver(staticSupply(5), openRoles{},
		metadata.Config{BaseURI: "ipfs://masked/"},
		metadata.WithCache(s.cache),
	)

	uri, err := resolver.TokenURI(ctx, 2)
	s.Require().NoError(err)
	s.Equal("ipfs://masked/2", uri)

	// The derived URI landed in redis under the current generation.
	cached, ok := s.cache.Get(ctx, "2")
	s.True(ok)
	s.Equal("ipfs://masked/2", cached)

	err = resolver.SetBaseTokenURI(ctx, operator, "ipfs://revealed/", true)
	s.Require().NoError(err)

	uri, err = resolver.TokenURI(ctx, 2)
	s.Require().NoError(err)
	s.Equal("ipfs://revealed/2.json", uri)
}
