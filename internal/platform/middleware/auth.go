package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// WalletValidator resolves a bearer token to the wallet it was issued for.
type WalletValidator interface {
	ExtractWallet(tokenString string) (domain.Address, error)
}

type contextKeyWallet struct{}

// ContextKeyWallet is exported for tests that inject an identity directly.
var ContextKeyWallet = contextKeyWallet{}

// GetWallet retrieves the authenticated wallet from the context. The zero
// address means the request was not authenticated.
func GetWallet(ctx context.Context) domain.Address {
	wallet, ok := ctx.Value(ContextKeyWallet).(domain.Address)
	if !ok {
		return domain.ZeroAddress
	}
	return wallet
}

// WithWallet injects a wallet identity into a context. Useful for service
// unit tests that don't run the full HTTP middleware chain.
func WithWallet(ctx context.Context, wallet domain.Address) context.Context {
	return context.WithValue(ctx, ContextKeyWallet, wallet)
}

// RequireWallet rejects requests without a valid bearer token and stores the
// token's wallet in the request context for the handlers.
func RequireWallet(validator WalletValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			wallet, err := validator.ExtractWallet(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithWallet(ctx, wallet)))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"HH_UNAUTHORIZED","error_description":"` + description + `"}`))
}
