// Package accesscontrol implements role membership and authorization checks
// for the issuance ledger. Three roles gate the mutating surface; a wallet
// holding Admin passes every check without explicit grants, which avoids
// simulating role inheritance.
package accesscontrol

import (
	"strings"

	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Role identifies a permission class.
type Role string

const (
	// RoleAdmin can grant and revoke any role and implicitly holds all
	// permissions.
	RoleAdmin Role = "admin"
	// RoleOperator may change the sale phase, tier roots, prices, quotas and
	// metadata configuration.
	RoleOperator Role = "operator"
	// RoleWithdrawer may trigger treasury withdrawal.
	RoleWithdrawer Role = "withdrawer"
)

// ParseRole normalizes external role input.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleOperator:
		return RoleOperator, nil
	case RoleWithdrawer:
		return RoleWithdrawer, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown role: "+s)
	}
}

// deniedCode maps a missing role to its categorical error. The codes are part
// of the external error contract.
func deniedCode(role Role) dErrors.Code {
	switch role {
	case RoleOperator:
		return dErrors.CodeCallerNotOperator
	case RoleWithdrawer:
		return dErrors.CodeCallerNotWithdrawer
	default:
		return dErrors.CodeCallerNotAdmin
	}
}
