package journal

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// Postgres persists the journal in a single append-only table. Sequence
// numbers come from a bigserial so List replays in commit order.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ledger_journal (
			seq            BIGSERIAL PRIMARY KEY,
			kind           TEXT NOT NULL,
			wallet         TEXT,
			from_addr      TEXT,
			to_addr        TEXT,
			first_token_id BIGINT,
			amount         INTEGER,
			source         TEXT,
			payment_wei    NUMERIC(78, 0),
			recorded_at    TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure journal schema: %w", err)
	}
	return nil
}

func (p *Postgres) Append(ctx context.Context, entry Entry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	var err error
	switch entry.Kind {
	case KindMint:
		op := entry.Mint
		_, err = p.db.ExecContext(ctx, `
			INSERT INTO ledger_journal (kind, wallet, first_token_id, amount, source, payment_wei, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, string(KindMint), op.Wallet.Hex(), uint64(op.FirstID), op.Amount, string(op.Source), weiString(op.Payment), at)
	case KindTransfer:
		op := entry.Transfer
		_, err = p.db.ExecContext(ctx, `
			INSERT INTO ledger_journal (kind, from_addr, to_addr, first_token_id, recorded_at)
			VALUES ($1, $2, $3, $4, $5)
		`, string(KindTransfer), op.From.Hex(), op.To.Hex(), uint64(op.TokenID), at)
	case KindWithdrawal:
		op := entry.Withdrawal
		_, err = p.db.ExecContext(ctx, `
			INSERT INTO ledger_journal (kind, to_addr, payment_wei, recorded_at)
			VALUES ($1, $2, $3, $4)
		`, string(KindWithdrawal), op.To.Hex(), weiString(op.Amount), at)
	default:
		return fmt.Errorf("unknown journal entry kind %q", entry.Kind)
	}
	if err != nil {
		return fmt.Errorf("append %s journal entry: %w", entry.Kind, err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT kind, wallet, from_addr, to_addr, first_token_id, amount, source, payment_wei, recorded_at
		FROM ledger_journal
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			kind                     string
			wallet, fromAddr, toAddr sql.NullString
			firstTokenID             sql.NullInt64
			amount                   sql.NullInt32
			source, paymentWei       sql.NullString
			recordedAt               time.Time
		)
		if err := rows.Scan(&kind, &wallet, &fromAddr, &toAddr, &firstTokenID, &amount, &source, &paymentWei, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}

		entry := Entry{Kind: Kind(kind), At: recordedAt}
		switch entry.Kind {
		case KindMint:
			w, err := domain.ParseAddress(wallet.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt wallet in journal: %w", err)
			}
			entry.Mint = &MintOp{
				Wallet:  w,
				FirstID: domain.TokenID(firstTokenID.Int64),
				Amount:  int(amount.Int32),
				Source:  Source(source.String),
				Payment: parseWei(paymentWei.String),
			}
		case KindTransfer:
			from, err := domain.ParseAddress(fromAddr.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt from_addr in journal: %w", err)
			}
			to, err := domain.ParseAddress(toAddr.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt to_addr in journal: %w", err)
			}
			entry.Transfer = &TransferOp{From: from, To: to, TokenID: domain.TokenID(firstTokenID.Int64)}
		case KindWithdrawal:
			to, err := domain.ParseAddress(toAddr.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt to_addr in journal: %w", err)
			}
			entry.Withdrawal = &WithdrawalOp{To: to, Amount: parseWei(paymentWei.String)}
		default:
			return nil, fmt.Errorf("unknown journal entry kind %q", kind)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseWei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}
