// Package domainerrors defines the categorical error taxonomy of the issuance
// ledger. Every failing request terminates with exactly one of these codes and
// no partial effect; the HTTP layer maps codes to statuses and the front end
// maps them to fixed user-facing messages.
package domainerrors

import "errors"

// Code identifies an error category on the wire. The HH_* strings are part of
// the external contract shared with the front end and must not change.
type Code string

const (
	CodeAlreadyClaimed         Code = "HH_ALREADY_CLAIMED"
	CodeCommunitySaleNotActive Code = "HH_COMMUNITY_SALE_NOT_ACTIVE"
	CodeInsufficientFunds      Code = "HH_INSUFFICIENT_FUNDS"
	CodeInvalidMintAmount      Code = "HH_INVALID_MINT_AMOUNT"
	CodePublicSaleNotActive    Code = "HH_PUBLIC_SALE_NOT_ACTIVE"
	CodeSupplyExhausted        Code = "HH_SUPPLY_EXHAUSTED"
	CodeVerificationFailure    Code = "HH_VERIFICATION_FAILURE"

	CodeCallerNotAdmin      Code = "HH_CALLER_NOT_ADMIN"
	CodeCallerNotOperator   Code = "HH_CALLER_NOT_OPERATOR"
	CodeCallerNotWithdrawer Code = "HH_CALLER_NOT_WITHDRAWER"

	CodeUnknownToken Code = "HH_UNKNOWN_TOKEN"
	CodeNotOwner     Code = "HH_NOT_OWNER"

	CodeBadRequest   Code = "HH_BAD_REQUEST"
	CodeUnauthorized Code = "HH_UNAUTHORIZED"
	CodeInternal     Code = "HH_INTERNAL"
)

// Error carries a code plus a human-oriented message. The message is for logs
// and operators; clients should key off the code only.
type Error struct {
	Code    Code
	Message string

	wrapped error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds a domain error with the given code.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code to an underlying error while keeping the chain intact
// for errors.Is / errors.As.
func Wrap(code Code, message string, err error) error {
	return &Error{Code: code, Message: message, wrapped: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal so transport
// layers never leak unclassified failures with a misleading category.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
