package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/platform-web3/hypehaus-contract/internal/transport/http/shared"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// TokenIssuer signs wallet session tokens.
type TokenIssuer interface {
	GenerateToken(wallet domain.Address, expiresIn time.Duration) (string, error)
}

// SessionHandler exchanges a wallet address for a bearer token. Signature
// verification of the wallet challenge happens at the gateway in front of
// this service; here the exchange is taken at face value.
type SessionHandler struct {
	issuer TokenIssuer
	ttl    time.Duration
	logger *slog.Logger
}

func NewSessionHandler(issuer TokenIssuer, ttl time.Duration, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{issuer: issuer, ttl: ttl, logger: logger}
}

// Register mounts the session route.
func (h *SessionHandler) Register(r chi.Router) {
	r.Post("/auth/session", h.handleCreateSession)
}

func (h *SessionHandler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Wallet string `json:"wallet"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	wallet, err := domain.ParseAddress(req.Wallet)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	token, err := h.issuer.GenerateToken(wallet, h.ttl)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "token issuance failed", "error", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "could not issue session token"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int(h.ttl.Seconds()),
	})
}
