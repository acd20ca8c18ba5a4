package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/internal/allowlist"
	"github.com/platform-web3/hypehaus-contract/internal/ledger"
	"github.com/platform-web3/hypehaus-contract/internal/ledger/journal"
	"github.com/platform-web3/hypehaus-contract/internal/metadata"
	"github.com/platform-web3/hypehaus-contract/internal/mint"
	"github.com/platform-web3/hypehaus-contract/internal/sale"
	"github.com/platform-web3/hypehaus-contract/internal/treasury"
	"github.com/platform-web3/hypehaus-contract/internal/walletauth"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// apiFixture wires the full stack on in-memory state and serves it through
// the real router, the way the process runs in development.
type apiFixture struct {
	router http.Handler
	admin  domain.Address
	minter domain.Address
	tree   *allowlist.Tree
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.Default()

	admin := domain.MustAddress("0x0000000000000000000000000000000000000a01")
	claimant := domain.MustAddress("0x0000000000000000000000000000000000000a02")

	acl, err := accesscontrol.New(ctx, admin, accesscontrol.NewInMemoryStore())
	require.NoError(t, err)

	saleState := sale.New(acl, sale.Params{
		CommunityPrice: big.NewInt(5),
		PublicPrice:    big.NewInt(8),
		MaxPerWallet: map[sale.Tier]int{
			sale.TierAlpha:      3,
			sale.TierHypelister: 2,
			sale.TierHypemember: 1,
		},
		MaxMintPublic: 2,
	})

	orch, err := mint.New(ctx,
		ledger.NewSupply(100), ledger.NewClaims(), saleState, acl,
		treasury.NewVault(admin, treasury.LogPayout{}), journal.NewMemory())
	require.NoError(t, err)

	resolver := metadata.NewResolver(orch, acl, metadata.Config{BaseURI: "ipfs://masked/"})
	tokens := walletauth.NewService("e2e-key", "hypehaus", "hypehaus-mint")

	router := NewRouter(logger, nil,
		NewSessionHandler(tokens, time.Hour, logger),
		NewQueryHandler(orch, saleState, acl, resolver),
		NewMintHandler(orch, tokens, logger),
		NewAdminHandler(saleState, acl, resolver, tokens, logger),
		NewTreasuryHandler(orch, tokens, logger),
	)

	return &apiFixture{
		router: router,
		admin:  admin,
		minter: claimant,
		tree:   allowlist.BuildTree([]domain.Address{claimant}),
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) session(t *testing.T, wallet domain.Address) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/auth/session", "", map[string]string{"wallet": wallet.Hex()})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token
}

func TestAPILifecycle(t *testing.T) {
	f := newAPIFixture(t)
	adminToken := f.session(t, f.admin)
	minterToken := f.session(t, f.minter)

	// The collection starts closed with nothing minted.
	rec := f.do(t, http.MethodGet, "/collection", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var collection struct {
		ActiveSale  string `json:"active_sale"`
		TotalMinted uint64 `json:"total_minted"`
		MaxSupply   uint64 `json:"max_supply"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&collection))
	assert.Equal(t, "closed", collection.ActiveSale)
	assert.Equal(t, uint64(0), collection.TotalMinted)
	assert.Equal(t, uint64(100), collection.MaxSupply)

	// Operator commits the alpha root and opens the community sale.
	rec = f.do(t, http.MethodPost, "/admin/tiers/alpha/root", adminToken,
		map[string]string{"root": f.tree.Root().Hex()})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodPost, "/admin/sale", adminToken, map[string]string{"phase": "community"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	// A non-operator cannot touch the sale configuration.
	rec = f.do(t, http.MethodPost, "/admin/sale", minterToken, map[string]string{"phase": "public"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The allowlisted wallet claims.
	proof, err := f.tree.Proof(f.minter)
	require.NoError(t, err)
	proofHex := make([]string, len(proof))
	for i, h := range proof {
		proofHex[i] = h.Hex()
	}
	rec = f.do(t, http.MethodPost, "/mint/alpha", minterToken, map[string]any{
		"amount":      2,
		"proof":       proofHex,
		"payment_wei": "10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var minted struct {
		TokenIDs []uint64 `json:"token_ids"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&minted))
	assert.Equal(t, []uint64{0, 1}, minted.TokenIDs)

	// Queries observe the mint.
	rec = f.do(t, http.MethodGet, "/tokens/0/owner", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var owner struct {
		Owner string `json:"owner"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&owner))
	assert.Equal(t, f.minter.Hex(), owner.Owner)

	rec = f.do(t, http.MethodGet, "/tokens/1/uri", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var uri struct {
		URI string `json:"uri"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&uri))
	assert.Equal(t, "ipfs://masked/1", uri.URI)

	rec = f.do(t, http.MethodGet, "/tokens/9/owner", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A second claim is refused with the categorical code.
	rec = f.do(t, http.MethodPost, "/mint/alpha", minterToken, map[string]any{
		"amount":      1,
		"proof":       proofHex,
		"payment_wei": "5",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	var failure struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&failure))
	assert.Equal(t, "HH_ALREADY_CLAIMED", failure.Error)

	// Reveal retargets minted tokens.
	rec = f.do(t, http.MethodPost, "/admin/base-uri", adminToken,
		map[string]any{"base_uri": "ipfs://real/", "revealed": true})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, "/tokens/1/uri", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&uri))
	assert.Equal(t, "ipfs://real/1.json", uri.URI)

	// Treasury accumulated the payment; only the privileged wallet drains it.
	rec = f.do(t, http.MethodGet, "/treasury/balance", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance struct {
		BalanceWei string `json:"balance_wei"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&balance))
	assert.Equal(t, "10", balance.BalanceWei)

	rec = f.do(t, http.MethodPost, "/treasury/withdraw", minterToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/treasury/withdraw", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var withdrawn struct {
		WithdrawnWei string `json:"withdrawn_wei"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&withdrawn))
	assert.Equal(t, "10", withdrawn.WithdrawnWei)
}

func TestRoleLifecycleOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	adminToken := f.session(t, f.admin)

	operator := domain.MustAddress("0x0000000000000000000000000000000000000b01")

	rec := f.do(t, http.MethodGet, "/roles/operator/"+operator.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var membership struct {
		Granted bool `json:"granted"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&membership))
	assert.False(t, membership.Granted)

	rec = f.do(t, http.MethodPost, "/admin/roles/grant", adminToken,
		map[string]string{"role": "operator", "wallet": operator.Hex()})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/roles/operator/"+operator.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&membership))
	assert.True(t, membership.Granted)

	// The fresh operator can now drive the sale.
	operatorToken := f.session(t, operator)
	rec = f.do(t, http.MethodPost, "/admin/sale", operatorToken, map[string]string{"phase": "public"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/admin/roles/revoke", adminToken,
		map[string]string{"role": "operator", "wallet": operator.Hex()})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodPost, "/admin/sale", operatorToken, map[string]string{"phase": "closed"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
