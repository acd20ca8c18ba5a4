package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platform-web3/hypehaus-contract/internal/platform/middleware"
	"github.com/platform-web3/hypehaus-contract/internal/transport/http/shared"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Minter is the slice of the orchestrator the mint routes need.
type Minter interface {
	MintAlpha(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error)
	MintHypelister(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error)
	MintHypemember(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error)
	MintPublic(ctx context.Context, caller domain.Address, amount int, payment *big.Int) ([]domain.TokenID, error)
	MintUnchecked(ctx context.Context, caller, wallet domain.Address, amount int) ([]domain.TokenID, error)
	TransferFrom(ctx context.Context, caller, to domain.Address, id domain.TokenID) error
}

// MintHandler serves the issuance endpoints. Every route is wallet
// authenticated; the caller identity comes from the bearer token, never from
// the request body.
type MintHandler struct {
	minter    Minter
	logger    *slog.Logger
	validator middleware.WalletValidator
}

func NewMintHandler(minter Minter, validator middleware.WalletValidator, logger *slog.Logger) *MintHandler {
	return &MintHandler{minter: minter, logger: logger, validator: validator}
}

// Register mounts the mint routes.
func (h *MintHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireWallet(h.validator, h.logger))
		r.Post("/mint/alpha", h.handleMintAlpha)
		r.Post("/mint/hypelister", h.handleMintHypelister)
		r.Post("/mint/hypemember", h.handleMintHypemember)
		r.Post("/mint/public", h.handleMintPublic)
		r.Post("/mint/unchecked", h.handleMintUnchecked)
		r.Post("/tokens/{id}/transfer", h.handleTransfer)
	})
}

type communityMintRequest struct {
	Amount     int      `json:"amount"`
	Proof      []string `json:"proof"`
	PaymentWei string   `json:"payment_wei"`
}

type publicMintRequest struct {
	Amount     int    `json:"amount"`
	PaymentWei string `json:"payment_wei"`
}

type uncheckedMintRequest struct {
	Wallet string `json:"wallet"`
	Amount int    `json:"amount"`
}

type transferRequest struct {
	To string `json:"to"`
}

type mintResponse struct {
	TokenIDs []uint64 `json:"token_ids"`
}

type communityMintFunc func(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error)

func (h *MintHandler) handleMintAlpha(w http.ResponseWriter, r *http.Request) {
	h.communityMint(w, r, h.minter.MintAlpha)
}

func (h *MintHandler) handleMintHypelister(w http.ResponseWriter, r *http.Request) {
	h.communityMint(w, r, h.minter.MintHypelister)
}

func (h *MintHandler) handleMintHypemember(w http.ResponseWriter, r *http.Request) {
	h.communityMint(w, r, h.minter.MintHypemember)
}

func (h *MintHandler) communityMint(w http.ResponseWriter, r *http.Request, mint communityMintFunc) {
	ctx := r.Context()
	caller := middleware.GetWallet(ctx)

	var req communityMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	proof, err := parseProof(req.Proof)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	payment, err := parseWei(req.PaymentWei)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	ids, err := mint(ctx, caller, req.Amount, proof, payment)
	if err != nil {
		h.logRejection(ctx, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, mintResponse{TokenIDs: rawIDs(ids)})
}

func (h *MintHandler) handleMintPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetWallet(ctx)

	var req publicMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	payment, err := parseWei(req.PaymentWei)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	ids, err := h.minter.MintPublic(ctx, caller, req.Amount, payment)
	if err != nil {
		h.logRejection(ctx, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, mintResponse{TokenIDs: rawIDs(ids)})
}

func (h *MintHandler) handleMintUnchecked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetWallet(ctx)

	var req uncheckedMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	wallet, err := domain.ParseAddress(req.Wallet)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	ids, err := h.minter.MintUnchecked(ctx, caller, wallet, req.Amount)
	if err != nil {
		h.logRejection(ctx, err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, mintResponse{TokenIDs: rawIDs(ids)})
}

func (h *MintHandler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetWallet(ctx)

	id, err := parseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	to, err := domain.ParseAddress(req.To)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.minter.TransferFrom(ctx, caller, to, id); err != nil {
		h.logRejection(ctx, err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MintHandler) logRejection(ctx context.Context, err error) {
	h.logger.WarnContext(ctx, "mint request refused",
		"code", string(dErrors.CodeOf(err)),
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
		"client_ip", middleware.GetClientIP(ctx),
	)
}

func rawIDs(ids []domain.TokenID) []uint64 {
	raw := make([]uint64, len(ids))
	for i, id := range ids {
		raw[i] = uint64(id)
	}
	return raw
}

func parseProof(raw []string) ([]domain.Hash, error) {
	proof := make([]domain.Hash, len(raw))
	for i, s := range raw {
		h, err := domain.ParseHash(s)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "proof element "+s+" is not a 32-byte hex hash")
		}
		proof[i] = h
	}
	return proof, nil
}

func parseWei(raw string) (*big.Int, error) {
	if raw == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "payment_wei must be a non-negative decimal wei amount")
	}
	return v, nil
}
