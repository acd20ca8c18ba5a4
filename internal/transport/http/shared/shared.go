// Package shared holds the JSON envelope helpers used by every handler group.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// WriteJSON writes a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a domain error into the JSON error envelope. Keeping
// the translation here ensures every handler speaks the same error dialect.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, statusFor(code), map[string]string{
		"error":             string(code),
		"error_description": err.Error(),
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidMintAmount:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case dErrors.CodeVerificationFailure, dErrors.CodeNotOwner,
		dErrors.CodeCallerNotAdmin, dErrors.CodeCallerNotOperator, dErrors.CodeCallerNotWithdrawer:
		return http.StatusForbidden
	case dErrors.CodeUnknownToken:
		return http.StatusNotFound
	case dErrors.CodeAlreadyClaimed, dErrors.CodeSupplyExhausted,
		dErrors.CodeCommunitySaleNotActive, dErrors.CodePublicSaleNotActive:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
