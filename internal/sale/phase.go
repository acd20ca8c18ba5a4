// Package sale holds the current sale phase and the per-tier price, root and
// quota configuration. All mutations are Operator-gated and take effect
// immediately; there is no queued or scheduled transition.
package sale

import (
	"strings"

	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Phase is the active sale mode. Transitions are fully connected: any phase
// is reachable from any other.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseCommunity
	PhasePublic
)

func (p Phase) String() string {
	switch p {
	case PhaseCommunity:
		return "community"
	case PhasePublic:
		return "public"
	default:
		return "closed"
	}
}

// ParsePhase converts front-end input into a Phase.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "closed":
		return PhaseClosed, nil
	case "community":
		return PhaseCommunity, nil
	case "public":
		return PhasePublic, nil
	default:
		return PhaseClosed, dErrors.New(dErrors.CodeBadRequest, "invalid sale phase: "+s)
	}
}

// Tier is one of the three disjoint allowlist classes of the community sale.
type Tier string

const (
	TierAlpha      Tier = "alpha"
	TierHypelister Tier = "hypelister"
	TierHypemember Tier = "hypemember"
)

// Tiers lists all community tiers in display order.
func Tiers() []Tier {
	return []Tier{TierAlpha, TierHypelister, TierHypemember}
}

// ParseTier converts front-end input into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierAlpha:
		return TierAlpha, nil
	case TierHypelister:
		return TierHypelister, nil
	case TierHypemember:
		return TierHypemember, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid tier: "+s)
	}
}
