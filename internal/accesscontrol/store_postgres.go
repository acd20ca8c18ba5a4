package accesscontrol

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// PostgresStore persists role grants and the owner designation.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS role_grants (
			role       TEXT NOT NULL,
			wallet     TEXT NOT NULL,
			granted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (role, wallet)
		);
		CREATE TABLE IF NOT EXISTS contract_owner (
			singleton  BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			wallet     TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure accesscontrol schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveGrant(ctx context.Context, role Role, wallet domain.Address) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO role_grants (role, wallet) VALUES ($1, $2)
		ON CONFLICT (role, wallet) DO NOTHING
	`, string(role), wallet.Hex())
	if err != nil {
		return fmt.Errorf("insert role grant: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteGrant(ctx context.Context, role Role, wallet domain.Address) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM role_grants WHERE role = $1 AND wallet = $2
	`, string(role), wallet.Hex())
	if err != nil {
		return fmt.Errorf("delete role grant: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListGrants(ctx context.Context) (map[Role][]domain.Address, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role, wallet FROM role_grants`)
	if err != nil {
		return nil, fmt.Errorf("list role grants: %w", err)
	}
	defer rows.Close()

	grants := make(map[Role][]domain.Address)
	for rows.Next() {
		var role, wallet string
		if err := rows.Scan(&role, &wallet); err != nil {
			return nil, fmt.Errorf("scan role grant: %w", err)
		}
		addr, err := domain.ParseAddress(wallet)
		if err != nil {
			return nil, fmt.Errorf("corrupt wallet in role_grants: %w", err)
		}
		grants[Role(role)] = append(grants[Role(role)], addr)
	}
	return grants, rows.Err()
}

func (s *PostgresStore) SaveOwner(ctx context.Context, owner domain.Address) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contract_owner (singleton, wallet) VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO UPDATE SET wallet = EXCLUDED.wallet, updated_at = NOW()
	`, owner.Hex())
	if err != nil {
		return fmt.Errorf("save owner: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindOwner(ctx context.Context) (domain.Address, bool, error) {
	var wallet string
	err := s.db.QueryRowContext(ctx, `SELECT wallet FROM contract_owner`).Scan(&wallet)
	if err == sql.ErrNoRows {
		return domain.ZeroAddress, false, nil
	}
	if err != nil {
		return domain.ZeroAddress, false, fmt.Errorf("find owner: %w", err)
	}
	addr, err := domain.ParseAddress(wallet)
	if err != nil {
		return domain.ZeroAddress, false, fmt.Errorf("corrupt wallet in contract_owner: %w", err)
	}
	return addr, true, nil
}
