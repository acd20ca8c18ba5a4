// Package journal provides the append-only persistence for ledger mutations.
// Supply, ownership, claims and the treasury balance are all derivable state:
// on boot the orchestrator replays the journal in order to rebuild them. A
// journal append happens before the in-memory commit and a failure fails the
// whole request, so persisted history and live state cannot diverge.
package journal

import (
	"context"
	"math/big"
	"time"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// Kind discriminates journal entries.
type Kind string

const (
	KindMint       Kind = "mint"
	KindTransfer   Kind = "transfer"
	KindWithdrawal Kind = "withdrawal"
)

// Source records which entry point produced a mint. Community sources set the
// wallet's one-shot claim flag on replay; the public source restores the
// cumulative count; unchecked mints touch no claim state.
type Source string

const (
	SourceAlpha      Source = "alpha"
	SourceHypelister Source = "hypelister"
	SourceHypemember Source = "hypemember"
	SourcePublic     Source = "public"
	SourceUnchecked  Source = "unchecked"
)

// IsCommunity reports whether the source is one of the three community tiers.
func (s Source) IsCommunity() bool {
	return s == SourceAlpha || s == SourceHypelister || s == SourceHypemember
}

// MintOp is one successful issuance: Amount consecutive ids starting at
// FirstID, assigned to Wallet. Payment is the full attached amount in wei.
type MintOp struct {
	Wallet  domain.Address
	FirstID domain.TokenID
	Amount  int
	Source  Source
	Payment *big.Int
}

// TransferOp is one ownership reassignment.
type TransferOp struct {
	From    domain.Address
	To      domain.Address
	TokenID domain.TokenID
}

// WithdrawalOp is one treasury payout of the full balance at that time.
type WithdrawalOp struct {
	To     domain.Address
	Amount *big.Int
}

// Entry is a single journal record. Exactly one of the op fields matching
// Kind is set.
type Entry struct {
	Kind       Kind
	At         time.Time
	Mint       *MintOp
	Transfer   *TransferOp
	Withdrawal *WithdrawalOp
}

// Journal is the append-only store. List returns entries in append order.
type Journal interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}
