// Package events carries the issuance notifications consumed by indexers and
// the front end's live supply display. One Transfer event is emitted per
// allocated token (from the zero address) and per ownership reassignment.
//
// Emission is fail-open: events are published after the ledger has committed
// and a delivery failure never rolls back or fails a mint.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// Transfer mirrors the ERC-721 Transfer notification. A mint carries the zero
// address in From.
type Transfer struct {
	ID      uuid.UUID      `json:"id"`
	From    domain.Address `json:"-"`
	To      domain.Address `json:"-"`
	TokenID domain.TokenID `json:"token_id"`
	At      time.Time      `json:"at"`

	// Hex projections for the wire; indexers get strings, not byte arrays.
	FromHex string `json:"from"`
	ToHex   string `json:"to"`
}

// NewTransfer stamps a transfer event with identity and time.
func NewTransfer(from, to domain.Address, tokenID domain.TokenID) Transfer {
	return Transfer{
		ID:      uuid.New(),
		From:    from,
		To:      to,
		TokenID: tokenID,
		At:      time.Now(),
		FromHex: from.Hex(),
		ToHex:   to.Hex(),
	}
}

// Publisher delivers transfer events to downstream consumers.
type Publisher interface {
	Emit(ctx context.Context, event Transfer) error
}

// Noop drops events; used when no broker is configured.
type Noop struct{}

func (Noop) Emit(context.Context, Transfer) error { return nil }
