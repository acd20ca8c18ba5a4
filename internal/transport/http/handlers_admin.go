package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/internal/platform/middleware"
	"github.com/platform-web3/hypehaus-contract/internal/sale"
	"github.com/platform-web3/hypehaus-contract/internal/transport/http/shared"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// SaleAdmin is the Operator-gated sale configuration surface.
type SaleAdmin interface {
	SetActiveSale(ctx context.Context, caller domain.Address, phase sale.Phase) error
	SetTierRoot(ctx context.Context, caller domain.Address, tier sale.Tier, root domain.Hash) error
	SetTierPrice(ctx context.Context, caller domain.Address, tier sale.Tier, price *big.Int) error
	SetTierMaxPerWallet(ctx context.Context, caller domain.Address, tier sale.Tier, max int) error
	SetPublicPrice(ctx context.Context, caller domain.Address, price *big.Int) error
	SetMaxMintPublic(ctx context.Context, caller domain.Address, max int) error
}

// RoleAdmin is the Admin-gated role management surface.
type RoleAdmin interface {
	GrantRole(ctx context.Context, caller domain.Address, role accesscontrol.Role, wallet domain.Address) error
	RevokeRole(ctx context.Context, caller domain.Address, role accesscontrol.Role, wallet domain.Address) error
	TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error
}

// MetadataAdmin is the Operator-gated reveal configuration surface.
type MetadataAdmin interface {
	SetBaseTokenURI(ctx context.Context, caller domain.Address, baseURI string, revealed bool) error
}

// AdminHandler serves the administrative routes. Authentication identifies
// the caller; the services themselves enforce role membership so a bypassed
// transport can never skip authorization.
type AdminHandler struct {
	sale      SaleAdmin
	roles     RoleAdmin
	metadata  MetadataAdmin
	logger    *slog.Logger
	validator middleware.WalletValidator
}

func NewAdminHandler(saleAdmin SaleAdmin, roles RoleAdmin, metadata MetadataAdmin, validator middleware.WalletValidator, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		sale:      saleAdmin,
		roles:     roles,
		metadata:  metadata,
		logger:    logger,
		validator: validator,
	}
}

// Register mounts the admin routes.
func (h *AdminHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireWallet(h.validator, h.logger))
		r.Post("/admin/sale", h.handleSetSale)
		r.Post("/admin/tiers/{tier}/root", h.handleSetTierRoot)
		r.Post("/admin/tiers/{tier}/price", h.handleSetTierPrice)
		r.Post("/admin/tiers/{tier}/max", h.handleSetTierMax)
		r.Post("/admin/public/price", h.handleSetPublicPrice)
		r.Post("/admin/public/max", h.handleSetPublicMax)
		r.Post("/admin/base-uri", h.handleSetBaseURI)
		r.Post("/admin/roles/grant", h.handleGrantRole)
		r.Post("/admin/roles/revoke", h.handleRevokeRole)
		r.Post("/admin/owner", h.handleTransferOwnership)
	})
}

func (h *AdminHandler) handleSetSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phase string `json:"phase"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	phase, err := sale.ParsePhase(req.Phase)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sale.SetActiveSale(r.Context(), middleware.GetWallet(r.Context()), phase); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleSetTierRoot(w http.ResponseWriter, r *http.Request) {
	tier, err := sale.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req struct {
		Root string `json:"root"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	root, err := domain.ParseHash(req.Root)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sale.SetTierRoot(r.Context(), middleware.GetWallet(r.Context()), tier, root); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleSetTierPrice(w http.ResponseWriter, r *http.Request) {
	tier, err := sale.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	price, err := h.decodePrice(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sale.SetTierPrice(r.Context(), middleware.GetWallet(r.Context()), tier, price); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleSetTierMax(w http.ResponseWriter, r *http.Request) {
	tier, err := sale.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	max, err := h.decodeMax(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sale.SetTierMaxPerWallet(r.Context(), middleware.GetWallet(r.Context()), tier, max); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleSetPublicPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.decodePrice(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sale.SetPublicPrice(r.Context(), middleware.GetWallet(r.Context()), price); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleSetPublicMax(w http.ResponseWriter, r *http.Request) {
	max, err := h.decodeMax(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sale.SetMaxMintPublic(r.Context(), middleware.GetWallet(r.Context()), max); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleSetBaseURI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BaseURI  string `json:"base_uri"`
		Revealed bool   `json:"revealed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.metadata.SetBaseTokenURI(r.Context(), middleware.GetWallet(r.Context()), req.BaseURI, req.Revealed); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type roleChangeRequest struct {
	Role   string `json:"role"`
	Wallet string `json:"wallet"`
}

func (h *AdminHandler) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	h.roleChange(w, r, h.roles.GrantRole)
}

func (h *AdminHandler) handleRevokeRole(w http.ResponseWriter, r *http.Request) {
	h.roleChange(w, r, h.roles.RevokeRole)
}

func (h *AdminHandler) roleChange(w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, caller domain.Address, role accesscontrol.Role, wallet domain.Address) error) {
	var req roleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	role, err := accesscontrol.ParseRole(req.Role)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	wallet, err := domain.ParseAddress(req.Wallet)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := change(r.Context(), middleware.GetWallet(r.Context()), role, wallet); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewOwner string `json:"new_owner"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	newOwner, err := domain.ParseAddress(req.NewOwner)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.roles.TransferOwnership(r.Context(), middleware.GetWallet(r.Context()), newOwner); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) decodePrice(r *http.Request) (*big.Int, error) {
	var req struct {
		PriceWei string `json:"price_wei"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	price, ok := new(big.Int).SetString(req.PriceWei, 10)
	if !ok || price.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "price_wei must be a non-negative decimal wei amount")
	}
	return price, nil
}

func (h *AdminHandler) decodeMax(r *http.Request) (int, error) {
	var req struct {
		Max int `json:"max"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return req.Max, nil
}
