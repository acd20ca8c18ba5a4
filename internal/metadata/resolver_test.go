package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

var (
	operator = domain.MustAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	stranger = domain.MustAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
)

type fixedSupply uint64

func (s fixedSupply) TotalMinted() uint64 { return uint64(s) }

type allowOnly struct {
	wallet domain.Address
}

func (a allowOnly) RequireRole(role accesscontrol.Role, caller domain.Address) error {
	if caller == a.wallet {
		return nil
	}
	return dErrors.New(dErrors.CodeCallerNotOperator, "denied")
}

// countingCache records hits and misses so tests can observe caching and
// invalidation without redis.
type countingCache struct {
	entries map[string]string
	gets    int
	hits    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string]string)}
}

func (c *countingCache) Get(_ context.Context, key string) (string, bool) {
	c.gets++
	value, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return value, ok
}

func (c *countingCache) Set(_ context.Context, key, value string) {
	c.entries[key] = value
}

func (c *countingCache) Invalidate(context.Context) {
	c.entries = make(map[string]string)
}

func TestTokenURIPreReveal(t *testing.T) {
	r := NewResolver(fixedSupply(5), allowOnly{operator}, Config{BaseURI: "ipfs://masked/", Revealed: false})

	uri, err := r.TokenURI(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://masked/0", uri)

	uri, err = r.TokenURI(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://masked/4", uri)
}

func TestTokenURIPostReveal(t *testing.T) {
	r := NewResolver(fixedSupply(5), allowOnly{operator}, Config{BaseURI: "ipfs://real/", Revealed: true})

	uri, err := r.TokenURI(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://real/3.json", uri)
}

func TestTokenURIUnknownToken(t *testing.T) {
	r := NewResolver(fixedSupply(2), allowOnly{operator}, Config{BaseURI: "ipfs://x/"})

	_, err := r.TokenURI(context.Background(), 2)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownToken))

	_, err = NewResolver(fixedSupply(0), allowOnly{operator}, Config{}).TokenURI(context.Background(), 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownToken))
}

func TestRevealRetargetsAllTokens(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(fixedSupply(3), allowOnly{operator}, Config{BaseURI: "ipfs://masked/"})

	uri, err := r.TokenURI(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://masked/1", uri)

	require.NoError(t, r.SetBaseTokenURI(ctx, operator, "ipfs://real/", true))

	// Including ids resolved before the reveal.
	for id, want := range map[domain.TokenID]string{0: "ipfs://real/0.json", 1: "ipfs://real/1.json", 2: "ipfs://real/2.json"} {
		uri, err := r.TokenURI(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, uri)
	}
}

func TestSetBaseTokenURIOperatorGated(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(fixedSupply(1), allowOnly{operator}, Config{BaseURI: "ipfs://masked/"})

	err := r.SetBaseTokenURI(ctx, stranger, "ipfs://real/", true)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCallerNotOperator))

	uri, err := r.TokenURI(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://masked/0", uri)
}

func TestSetBaseTokenURIRejectsMalformedURI(t *testing.T) {
	r := NewResolver(fixedSupply(1), allowOnly{operator}, Config{})
	err := r.SetBaseTokenURI(context.Background(), operator, "not a uri", true)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestResolverUsesAndInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	cache := newCountingCache()
	r := NewResolver(fixedSupply(2), allowOnly{operator}, Config{BaseURI: "ipfs://masked/"}, WithCache(cache))

	uri, err := r.TokenURI(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://masked/1", uri)
	assert.Equal(t, 0, cache.hits)

	uri, err = r.TokenURI(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://masked/1", uri)
	assert.Equal(t, 1, cache.hits)

	// Changing the configuration drops the cache so nothing stale is served.
	require.NoError(t, r.SetBaseTokenURI(ctx, operator, "ipfs://real/", true))
	uri, err = r.TokenURI(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://real/1.json", uri)
}
