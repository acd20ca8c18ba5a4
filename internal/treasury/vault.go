// Package treasury tracks the payment balance accumulated by the issuance
// ledger and pays it out to the team wallet. The vault carries no locking:
// both mutation paths (payment acceptance during a mint, withdrawal) run
// inside the orchestrator's serialized section.
package treasury

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// Payout is the host boundary for moving funds out of the ledger. The core
// only decides when and how much; the actual settlement is external.
type Payout interface {
	Transfer(ctx context.Context, to domain.Address, amount *big.Int) error
}

// Vault is the accumulated payment balance plus the construction-time payout
// wallet. The payout wallet is not runtime-mutable.
type Vault struct {
	team    domain.Address
	balance *big.Int
	payout  Payout
}

func NewVault(team domain.Address, payout Payout) *Vault {
	return &Vault{team: team, balance: new(big.Int), payout: payout}
}

// Team reports the configured payout wallet.
func (v *Vault) Team() domain.Address { return v.team }

// Balance returns a copy of the current balance in wei.
func (v *Vault) Balance() *big.Int { return new(big.Int).Set(v.balance) }

// Credit adds an accepted mint payment to the balance.
func (v *Vault) Credit(amount *big.Int) {
	if amount != nil && amount.Sign() > 0 {
		v.balance.Add(v.balance, amount)
	}
}

// Drain zeroes the balance and returns what was held. The caller journals the
// withdrawal and hands the amount to the payout boundary.
func (v *Vault) Drain() *big.Int {
	drained := v.balance
	v.balance = new(big.Int)
	return drained
}

// Pay settles a drained amount through the payout boundary.
func (v *Vault) Pay(ctx context.Context, amount *big.Int) error {
	return v.payout.Transfer(ctx, v.team, amount)
}

// LogPayout is the default Payout: it records the settlement intent for the
// operator instead of moving funds, which is all a development or test run
// can do.
type LogPayout struct {
	Logger *slog.Logger
}

func (p LogPayout) Transfer(ctx context.Context, to domain.Address, amount *big.Int) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "treasury payout requested", "to", to.Hex(), "amount_wei", amount.String())
	return nil
}
