package httptransport

import (
	"context"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/internal/sale"
	"github.com/platform-web3/hypehaus-contract/internal/transport/http/shared"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// LedgerReader is the read-only slice of the orchestrator used by the public
// query routes. All reads are pure and side-effect free.
type LedgerReader interface {
	TotalMinted() uint64
	MaxSupply() uint64
	OwnerOf(id domain.TokenID) (domain.Address, error)
	BalanceOf(wallet domain.Address) int
	PublicMinted(wallet domain.Address) int
	HasCommunityClaim(wallet domain.Address) bool
}

// SaleReader exposes the sale configuration for the collection snapshot.
type SaleReader interface {
	ActiveSale() sale.Phase
	Tier(tier sale.Tier) (sale.TierConfig, error)
	PublicPrice() *big.Int
	MaxMintPublic() int
}

// RoleReader answers role-membership queries.
type RoleReader interface {
	HasRole(role accesscontrol.Role, wallet domain.Address) bool
	Owner() domain.Address
}

// URIResolver derives token descriptor URIs.
type URIResolver interface {
	TokenURI(ctx context.Context, id domain.TokenID) (string, error)
}

// QueryHandler serves the unauthenticated read-only routes the front end
// polls: collection state, per-token lookups and role membership.
type QueryHandler struct {
	ledger   LedgerReader
	sale     SaleReader
	roles    RoleReader
	resolver URIResolver
}

func NewQueryHandler(ledger LedgerReader, saleReader SaleReader, roles RoleReader, resolver URIResolver) *QueryHandler {
	return &QueryHandler{ledger: ledger, sale: saleReader, roles: roles, resolver: resolver}
}

// Register mounts the query routes.
func (h *QueryHandler) Register(r chi.Router) {
	r.Get("/collection", h.handleCollection)
	r.Get("/tokens/{id}/uri", h.handleTokenURI)
	r.Get("/tokens/{id}/owner", h.handleTokenOwner)
	r.Get("/wallets/{wallet}/balance", h.handleWalletBalance)
	r.Get("/roles/{role}/{wallet}", h.handleRoleMembership)
}

type tierView struct {
	Root         string `json:"root"`
	PriceWei     string `json:"price_wei"`
	MaxPerWallet int    `json:"max_per_wallet"`
}

type collectionView struct {
	ActiveSale     string              `json:"active_sale"`
	TotalMinted    uint64              `json:"total_minted"`
	MaxSupply      uint64              `json:"max_supply"`
	Tiers          map[string]tierView `json:"tiers"`
	PublicPriceWei string              `json:"public_price_wei"`
	MaxMintPublic  int                 `json:"max_mint_public"`
	Owner          string              `json:"owner"`
}

func (h *QueryHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	view := collectionView{
		ActiveSale:     h.sale.ActiveSale().String(),
		TotalMinted:    h.ledger.TotalMinted(),
		MaxSupply:      h.ledger.MaxSupply(),
		Tiers:          make(map[string]tierView, 3),
		PublicPriceWei: h.sale.PublicPrice().String(),
		MaxMintPublic:  h.sale.MaxMintPublic(),
		Owner:          h.roles.Owner().Hex(),
	}
	for _, tier := range sale.Tiers() {
		cfg, err := h.sale.Tier(tier)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		view.Tiers[string(tier)] = tierView{
			Root:         cfg.Root.Hex(),
			PriceWei:     cfg.Price.String(),
			MaxPerWallet: cfg.MaxPerWallet,
		}
	}
	shared.WriteJSON(w, http.StatusOK, view)
}

func (h *QueryHandler) handleTokenURI(w http.ResponseWriter, r *http.Request) {
	id, err := parseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	uri, err := h.resolver.TokenURI(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"token_id": id.String(),
		"uri":      uri,
	})
}

func (h *QueryHandler) handleTokenOwner(w http.ResponseWriter, r *http.Request) {
	id, err := parseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	owner, err := h.ledger.OwnerOf(id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"token_id": id.String(),
		"owner":    owner.Hex(),
	})
}

func (h *QueryHandler) handleWalletBalance(w http.ResponseWriter, r *http.Request) {
	wallet, err := domain.ParseAddress(chi.URLParam(r, "wallet"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"wallet":            wallet.Hex(),
		"balance":           h.ledger.BalanceOf(wallet),
		"public_minted":     h.ledger.PublicMinted(wallet),
		"community_claimed": h.ledger.HasCommunityClaim(wallet),
	})
}

func (h *QueryHandler) handleRoleMembership(w http.ResponseWriter, r *http.Request) {
	role, err := accesscontrol.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	wallet, err := domain.ParseAddress(chi.URLParam(r, "wallet"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"role":    string(role),
		"wallet":  wallet.Hex(),
		"granted": h.roles.HasRole(role, wallet),
	})
}

func parseTokenID(raw string) (domain.TokenID, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "token id must be an unsigned integer")
	}
	return domain.TokenID(id), nil
}
