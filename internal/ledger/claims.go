package ledger

import (
	"fmt"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Claims tracks per-wallet mint entitlements. The community sale is a single
// one-shot flag shared across all three tiers; the public sale is a running
// count against a configurable maximum. Neither resets at runtime.
//
// Both failure modes deliberately carry the same external code,
// HH_ALREADY_CLAIMED, to stay wire-compatible with the front end; the
// messages distinguish them for operators.
type Claims struct {
	community   map[domain.Address]struct{}
	publicCount map[domain.Address]int
}

func NewClaims() *Claims {
	return &Claims{
		community:   make(map[domain.Address]struct{}),
		publicCount: make(map[domain.Address]int),
	}
}

// HasCommunityClaim reports whether wallet already minted in the community
// sale under any tier.
func (c *Claims) HasCommunityClaim(wallet domain.Address) bool {
	_, ok := c.community[wallet]
	return ok
}

// RecordCommunityClaim consumes the wallet's one community mint.
func (c *Claims) RecordCommunityClaim(wallet domain.Address) error {
	if c.HasCommunityClaim(wallet) {
		return dErrors.New(dErrors.CodeAlreadyClaimed, "wallet "+wallet.Hex()+" already claimed in the community sale")
	}
	c.community[wallet] = struct{}{}
	return nil
}

// PublicCount reports the wallet's cumulative public-sale mints.
func (c *Claims) PublicCount(wallet domain.Address) int {
	return c.publicCount[wallet]
}

// RecordPublicClaim adds amount to the wallet's cumulative public-sale count,
// failing when the configured maximum would be crossed.
func (c *Claims) RecordPublicClaim(wallet domain.Address, amount, maxPerWallet int) error {
	current := c.publicCount[wallet]
	if current+amount > maxPerWallet {
		return dErrors.New(dErrors.CodeAlreadyClaimed,
			fmt.Sprintf("wallet %s already minted %d of %d in the public sale", wallet.Hex(), current, maxPerWallet))
	}
	c.publicCount[wallet] = current + amount
	return nil
}

// RestoreCommunityClaim and RestorePublicCount rebuild claim state during
// journal replay. They bypass quota checks: the journal only contains
// operations that passed them when they were accepted.

func (c *Claims) RestoreCommunityClaim(wallet domain.Address) {
	c.community[wallet] = struct{}{}
}

func (c *Claims) RestorePublicCount(wallet domain.Address, amount int) {
	c.publicCount[wallet] += amount
}
