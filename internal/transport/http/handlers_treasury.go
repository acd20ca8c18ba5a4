package httptransport

import (
	"context"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platform-web3/hypehaus-contract/internal/platform/middleware"
	"github.com/platform-web3/hypehaus-contract/internal/transport/http/shared"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// Treasury is the slice of the orchestrator the treasury routes need.
type Treasury interface {
	TreasuryBalance() *big.Int
	Withdraw(ctx context.Context, caller domain.Address) (*big.Int, error)
}

// TreasuryHandler serves the treasury balance read and the Withdrawer-gated
// payout trigger.
type TreasuryHandler struct {
	treasury  Treasury
	logger    *slog.Logger
	validator middleware.WalletValidator
}

func NewTreasuryHandler(treasury Treasury, validator middleware.WalletValidator, logger *slog.Logger) *TreasuryHandler {
	return &TreasuryHandler{treasury: treasury, logger: logger, validator: validator}
}

// Register mounts the treasury routes.
func (h *TreasuryHandler) Register(r chi.Router) {
	r.Get("/treasury/balance", h.handleBalance)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireWallet(h.validator, h.logger))
		r.Post("/treasury/withdraw", h.handleWithdraw)
	})
}

func (h *TreasuryHandler) handleBalance(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"balance_wei": h.treasury.TreasuryBalance().String(),
	})
}

func (h *TreasuryHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetWallet(ctx)

	drained, err := h.treasury.Withdraw(ctx, caller)
	if err != nil {
		h.logger.WarnContext(ctx, "withdrawal refused",
			"code", string(dErrors.CodeOf(err)),
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"withdrawn_wei": drained.String(),
	})
}
