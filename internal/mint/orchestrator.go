// Package mint is the core of the issuance ledger. The Orchestrator owns the
// mutable ledger state (supply, claims, treasury balance) and serializes every
// mutation under one lock, so each request sees and produces a consistent
// snapshot. Checks run in a fixed order and are side-effect free; once they
// pass, the operation is journaled and then applied, and the in-memory apply
// cannot fail. Events are emitted after the commit and never influence it.
package mint

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/internal/allowlist"
	"github.com/platform-web3/hypehaus-contract/internal/events"
	"github.com/platform-web3/hypehaus-contract/internal/ledger"
	"github.com/platform-web3/hypehaus-contract/internal/ledger/journal"
	"github.com/platform-web3/hypehaus-contract/internal/mint/metrics"
	"github.com/platform-web3/hypehaus-contract/internal/sale"
	"github.com/platform-web3/hypehaus-contract/internal/treasury"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// RoleChecker is the slice of the access-control registry the orchestrator
// needs for gating the privileged entry points.
type RoleChecker interface {
	RequireRole(role accesscontrol.Role, caller domain.Address) error
}

// Orchestrator coordinates a mint request across the sale configuration, the
// allowlists, the supply ledger, claim tracking and the treasury. All state
// behind the mutex is rebuilt from the journal on boot.
type Orchestrator struct {
	mu     sync.RWMutex
	supply *ledger.Supply
	claims *ledger.Claims
	vault  *treasury.Vault

	sale    *sale.State
	acl     RoleChecker
	journal journal.Journal

	publisher events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(o *Orchestrator) {
		o.publisher = p
	}
}

// New wires the orchestrator and replays the journal to rebuild supply,
// ownership, claims and the treasury balance. A replay mismatch (journaled
// ids that do not line up with sequential allocation) aborts construction:
// serving from a corrupt ledger is worse than not serving.
func New(ctx context.Context, supply *ledger.Supply, claims *ledger.Claims, saleState *sale.State, acl RoleChecker, vault *treasury.Vault, jrnl journal.Journal, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		supply:    supply,
		claims:    claims,
		vault:     vault,
		sale:      saleState,
		acl:       acl,
		journal:   jrnl,
		publisher: events.Noop{},
		logger:    slog.Default(),
		tracer:    otel.Tracer("hypehaus/mint"),
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.replay(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// replay rebuilds the ledger from the journal. Entries are applied in append
// order without re-running sale checks: each one already passed them when it
// was accepted.
func (o *Orchestrator) replay(ctx context.Context) error {
	entries, err := o.journal.List(ctx)
	if err != nil {
		return fmt.Errorf("listing journal: %w", err)
	}
	for i, entry := range entries {
		switch entry.Kind {
		case journal.KindMint:
			op := entry.Mint
			if op == nil {
				return fmt.Errorf("journal entry %d: mint entry without mint op", i)
			}
			if next := o.supply.NextIDs(1); len(next) == 0 || next[0] != op.FirstID {
				return fmt.Errorf("journal entry %d: first id %s does not continue the sequence", i, op.FirstID)
			}
			if _, err := o.supply.Allocate(op.Wallet, op.Amount); err != nil {
				return fmt.Errorf("journal entry %d: %w", i, err)
			}
			if op.Source.IsCommunity() {
				o.claims.RestoreCommunityClaim(op.Wallet)
			}
			if op.Source == journal.SourcePublic {
				o.claims.RestorePublicCount(op.Wallet, op.Amount)
			}
			o.vault.Credit(op.Payment)
		case journal.KindTransfer:
			op := entry.Transfer
			if op == nil {
				return fmt.Errorf("journal entry %d: transfer entry without transfer op", i)
			}
			if err := o.supply.Transfer(op.From, op.To, op.TokenID); err != nil {
				return fmt.Errorf("journal entry %d: %w", i, err)
			}
		case journal.KindWithdrawal:
			o.vault.Drain()
		default:
			return fmt.Errorf("journal entry %d: unknown kind %q", i, entry.Kind)
		}
	}
	if len(entries) > 0 {
		o.logger.InfoContext(ctx, "ledger rebuilt from journal",
			"entries", len(entries),
			"total_minted", o.supply.TotalMinted(),
			"treasury_wei", o.vault.Balance().String(),
		)
	}
	return nil
}

// MintAlpha mints for a wallet on the Alpha allowlist.
func (o *Orchestrator) MintAlpha(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error) {
	return o.mintCommunity(ctx, caller, sale.TierAlpha, journal.SourceAlpha, amount, proof, payment)
}

// MintHypelister mints for a wallet on the Hypelister allowlist.
func (o *Orchestrator) MintHypelister(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error) {
	return o.mintCommunity(ctx, caller, sale.TierHypelister, journal.SourceHypelister, amount, proof, payment)
}

// MintHypemember mints for a wallet on the Hypemember allowlist.
func (o *Orchestrator) MintHypemember(ctx context.Context, caller domain.Address, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error) {
	return o.mintCommunity(ctx, caller, sale.TierHypemember, journal.SourceHypemember, amount, proof, payment)
}

// mintCommunity is the shared path for the three allowlist tiers. Checks run
// in a fixed order so a request failing several of them always reports the
// same error: phase, amount bounds, proof, funds, claim, supply.
func (o *Orchestrator) mintCommunity(ctx context.Context, caller domain.Address, tier sale.Tier, source journal.Source, amount int, proof []domain.Hash, payment *big.Int) ([]domain.TokenID, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "mint.community", trace.WithAttributes(
		attribute.String("tier", string(tier)),
		attribute.Int("amount", amount),
	))
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.sale.ActiveSale() != sale.PhaseCommunity {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeCommunitySaleNotActive, "the community sale is not open"))
	}
	cfg, err := o.sale.Tier(tier)
	if err != nil {
		return nil, o.reject(ctx, start, err)
	}
	if amount < 1 || amount > cfg.MaxPerWallet {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeInvalidMintAmount,
			fmt.Sprintf("amount must be between 1 and %d for the %s tier", cfg.MaxPerWallet, tier)))
	}
	if !allowlist.Verify(cfg.Root, proof, caller) {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeVerificationFailure,
			"wallet "+caller.Hex()+" is not on the "+string(tier)+" allowlist"))
	}
	if err := checkFunds(cfg.Price, amount, payment); err != nil {
		return nil, o.reject(ctx, start, err)
	}
	if o.claims.HasCommunityClaim(caller) {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeAlreadyClaimed,
			"wallet "+caller.Hex()+" already claimed in the community sale"))
	}
	if !o.supply.CanAllocate(amount) {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeSupplyExhausted,
			fmt.Sprintf("%d of %d minted, cannot allocate %d more", o.supply.TotalMinted(), o.supply.MaxSupply(), amount)))
	}

	ids, err := o.commitMint(ctx, caller, source, amount, payment)
	if err != nil {
		return nil, o.reject(ctx, start, err)
	}
	// Cannot fail: the claim flag was checked above and nothing ran in between.
	_ = o.claims.RecordCommunityClaim(caller)

	o.finishMint(ctx, string(source), caller, ids, start)
	return ids, nil
}

// MintPublic mints during the public sale. Unlike the community tiers the
// per-wallet maximum is cumulative across requests.
func (o *Orchestrator) MintPublic(ctx context.Context, caller domain.Address, amount int, payment *big.Int) ([]domain.TokenID, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "mint.public", trace.WithAttributes(
		attribute.Int("amount", amount),
	))
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.sale.ActiveSale() != sale.PhasePublic {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodePublicSaleNotActive, "the public sale is not open"))
	}
	maxPerWallet := o.sale.MaxMintPublic()
	if amount < 1 || amount > maxPerWallet {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeInvalidMintAmount,
			fmt.Sprintf("amount must be between 1 and %d in the public sale", maxPerWallet)))
	}
	if err := checkFunds(o.sale.PublicPrice(), amount, payment); err != nil {
		return nil, o.reject(ctx, start, err)
	}
	if o.claims.PublicCount(caller)+amount > maxPerWallet {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeAlreadyClaimed,
			fmt.Sprintf("wallet %s already minted %d of %d in the public sale", caller.Hex(), o.claims.PublicCount(caller), maxPerWallet)))
	}
	if !o.supply.CanAllocate(amount) {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeSupplyExhausted,
			fmt.Sprintf("%d of %d minted, cannot allocate %d more", o.supply.TotalMinted(), o.supply.MaxSupply(), amount)))
	}

	ids, err := o.commitMint(ctx, caller, journal.SourcePublic, amount, payment)
	if err != nil {
		return nil, o.reject(ctx, start, err)
	}
	// Cannot fail: the quota was checked above and nothing ran in between.
	_ = o.claims.RecordPublicClaim(caller, amount, maxPerWallet)

	o.finishMint(ctx, string(journal.SourcePublic), caller, ids, start)
	return ids, nil
}

// MintUnchecked issues tokens to an arbitrary wallet, bypassing sale phase,
// payment and claim tracking. Only the supply cap still applies. Operator
// gated (Admins hold every role implicitly).
func (o *Orchestrator) MintUnchecked(ctx context.Context, caller, wallet domain.Address, amount int) ([]domain.TokenID, error) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "mint.unchecked", trace.WithAttributes(
		attribute.Int("amount", amount),
	))
	defer span.End()

	if err := o.acl.RequireRole(accesscontrol.RoleOperator, caller); err != nil {
		return nil, o.reject(ctx, start, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if amount < 1 {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeInvalidMintAmount, "amount must be at least 1"))
	}
	if !o.supply.CanAllocate(amount) {
		return nil, o.reject(ctx, start, dErrors.New(dErrors.CodeSupplyExhausted,
			fmt.Sprintf("%d of %d minted, cannot allocate %d more", o.supply.TotalMinted(), o.supply.MaxSupply(), amount)))
	}

	ids, err := o.commitMint(ctx, wallet, journal.SourceUnchecked, amount, nil)
	if err != nil {
		return nil, o.reject(ctx, start, err)
	}

	o.logger.InfoContext(ctx, "unchecked mint", "by", caller.Hex(), "to", wallet.Hex(), "amount", amount)
	o.finishMint(ctx, string(journal.SourceUnchecked), wallet, ids, start)
	return ids, nil
}

// commitMint is the shared commit step: all checks have passed and the lock
// is held. The journal append is the commit point; after it succeeds the
// in-memory apply cannot fail.
func (o *Orchestrator) commitMint(ctx context.Context, wallet domain.Address, source journal.Source, amount int, payment *big.Int) ([]domain.TokenID, error) {
	ids := o.supply.NextIDs(amount)
	entry := journal.Entry{
		Kind: journal.KindMint,
		At:   time.Now(),
		Mint: &journal.MintOp{
			Wallet:  wallet,
			FirstID: ids[0],
			Amount:  amount,
			Source:  source,
			Payment: payment,
		},
	}
	if err := o.journal.Append(ctx, entry); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "recording the mint", err)
	}
	if _, err := o.supply.Allocate(wallet, amount); err != nil {
		// Unreachable after CanAllocate under the lock; surface it loudly if
		// the invariant is ever broken.
		return nil, dErrors.Wrap(dErrors.CodeInternal, "allocating journaled ids", err)
	}
	o.vault.Credit(payment)
	return ids, nil
}

// finishMint logs, records metrics and emits one Transfer event per token.
// Emission is fail-open: the mint has committed and a delivery failure only
// gets logged.
func (o *Orchestrator) finishMint(ctx context.Context, entry string, wallet domain.Address, ids []domain.TokenID, start time.Time) {
	o.logger.InfoContext(ctx, "tokens minted",
		"entry", entry,
		"wallet", wallet.Hex(),
		"amount", len(ids),
		"first_id", ids[0].String(),
		"total_minted", o.supply.TotalMinted(),
	)
	if o.metrics != nil {
		o.metrics.ObserveMint(entry, len(ids), start)
	}
	for _, id := range ids {
		event := events.NewTransfer(domain.ZeroAddress, wallet, id)
		if err := o.publisher.Emit(ctx, event); err != nil {
			o.logger.WarnContext(ctx, "transfer event delivery failed", "token_id", id.String(), "error", err)
		}
	}
}

// TransferFrom reassigns ownership of a minted token. The caller must be the
// current owner.
func (o *Orchestrator) TransferFrom(ctx context.Context, caller, to domain.Address, id domain.TokenID) error {
	ctx, span := o.tracer.Start(ctx, "mint.transfer")
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()

	owner, err := o.supply.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != caller {
		return dErrors.New(dErrors.CodeNotOwner, "token "+id.String()+" is not owned by "+caller.Hex())
	}

	entry := journal.Entry{
		Kind:     journal.KindTransfer,
		At:       time.Now(),
		Transfer: &journal.TransferOp{From: caller, To: to, TokenID: id},
	}
	if err := o.journal.Append(ctx, entry); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "recording the transfer", err)
	}
	if err := o.supply.Transfer(caller, to, id); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "applying journaled transfer", err)
	}

	o.logger.InfoContext(ctx, "token transferred", "token_id", id.String(), "from", caller.Hex(), "to", to.Hex())
	if o.metrics != nil {
		o.metrics.TransfersTotal.Inc()
	}
	event := events.NewTransfer(caller, to, id)
	if err := o.publisher.Emit(ctx, event); err != nil {
		o.logger.WarnContext(ctx, "transfer event delivery failed", "token_id", id.String(), "error", err)
	}
	return nil
}

// Withdraw drains the full treasury balance to the team wallet. Withdrawer
// gated. A zero balance is a no-op that still succeeds.
func (o *Orchestrator) Withdraw(ctx context.Context, caller domain.Address) (*big.Int, error) {
	ctx, span := o.tracer.Start(ctx, "treasury.withdraw")
	defer span.End()

	if err := o.acl.RequireRole(accesscontrol.RoleWithdrawer, caller); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	balance := o.vault.Balance()
	if balance.Sign() == 0 {
		return balance, nil
	}

	entry := journal.Entry{
		Kind:       journal.KindWithdrawal,
		At:         time.Now(),
		Withdrawal: &journal.WithdrawalOp{To: o.vault.Team(), Amount: balance},
	}
	if err := o.journal.Append(ctx, entry); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "recording the withdrawal", err)
	}
	drained := o.vault.Drain()
	if err := o.vault.Pay(ctx, drained); err != nil {
		// The balance is drained and the withdrawal journaled; the settlement
		// boundary failed. This needs operator reconciliation, not a retry.
		o.logger.ErrorContext(ctx, "CRITICAL: payout settlement failed after drain",
			"to", o.vault.Team().Hex(), "amount_wei", drained.String(), "error", err)
		return nil, dErrors.Wrap(dErrors.CodeInternal, "settling the payout", err)
	}

	o.logger.InfoContext(ctx, "treasury withdrawn",
		"to", o.vault.Team().Hex(), "amount_wei", drained.String(), "by", caller.Hex())
	if o.metrics != nil {
		o.metrics.Withdrawals.Inc()
	}
	return drained, nil
}

// reject records a refused request and passes the error through unchanged.
func (o *Orchestrator) reject(ctx context.Context, start time.Time, err error) error {
	if o.metrics != nil {
		o.metrics.ObserveRejection(string(dErrors.CodeOf(err)), start)
	}
	o.logger.DebugContext(ctx, "request rejected", "code", string(dErrors.CodeOf(err)), "error", err)
	return err
}

// checkFunds verifies that payment covers unit price times amount. A nil
// payment counts as zero.
func checkFunds(price *big.Int, amount int, payment *big.Int) error {
	cost := new(big.Int).Mul(price, big.NewInt(int64(amount)))
	attached := payment
	if attached == nil {
		attached = new(big.Int)
	}
	if attached.Cmp(cost) < 0 {
		return dErrors.New(dErrors.CodeInsufficientFunds,
			fmt.Sprintf("minting %d costs %s wei, got %s", amount, cost.String(), attached.String()))
	}
	return nil
}

// TotalMinted reports how many tokens have been issued.
func (o *Orchestrator) TotalMinted() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.supply.TotalMinted()
}

// MaxSupply reports the fixed collection cap.
func (o *Orchestrator) MaxSupply() uint64 {
	return o.supply.MaxSupply()
}

// OwnerOf resolves the current owner of a minted token.
func (o *Orchestrator) OwnerOf(id domain.TokenID) (domain.Address, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.supply.OwnerOf(id)
}

// BalanceOf counts the tokens currently owned by a wallet.
func (o *Orchestrator) BalanceOf(wallet domain.Address) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.supply.BalanceOf(wallet)
}

// TreasuryBalance reports the accumulated, unwithdrawn payment balance.
func (o *Orchestrator) TreasuryBalance() *big.Int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.vault.Balance()
}

// PublicMinted reports a wallet's cumulative public-sale count.
func (o *Orchestrator) PublicMinted(wallet domain.Address) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.claims.PublicCount(wallet)
}

// HasCommunityClaim reports whether a wallet has used its community one-shot.
func (o *Orchestrator) HasCommunityClaim(wallet domain.Address) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.claims.HasCommunityClaim(wallet)
}
