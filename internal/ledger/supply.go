// Package ledger holds the issuance ledger state: the supply-capped ownership
// map and the per-wallet claim bookkeeping. The types here carry no locking;
// the mint orchestrator serializes every mutation, which is what makes the
// check-then-mutate sequences atomic.
package ledger

import (
	"fmt"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Supply allocates sequential token ids and records ownership. maxSupply is
// fixed at construction; totalMinted only grows; owners is defined for
// exactly the ids in [0, totalMinted).
type Supply struct {
	maxSupply   uint64
	totalMinted uint64
	owners      map[domain.TokenID]domain.Address
	balances    map[domain.Address]int
}

func NewSupply(maxSupply uint64) *Supply {
	return &Supply{
		maxSupply: maxSupply,
		owners:    make(map[domain.TokenID]domain.Address),
		balances:  make(map[domain.Address]int),
	}
}

func (s *Supply) MaxSupply() uint64 { return s.maxSupply }

func (s *Supply) TotalMinted() uint64 { return s.totalMinted }

// Remaining reports how many tokens can still be allocated.
func (s *Supply) Remaining() uint64 { return s.maxSupply - s.totalMinted }

// CanAllocate reports whether amount more tokens fit under the supply cap.
func (s *Supply) CanAllocate(amount int) bool {
	return amount >= 0 && uint64(amount) <= s.Remaining()
}

// NextIDs previews the ids the next allocation of amount would assign,
// without mutating anything. The orchestrator journals these before commit.
func (s *Supply) NextIDs(amount int) []domain.TokenID {
	ids := make([]domain.TokenID, amount)
	for i := range ids {
		ids[i] = domain.TokenID(s.totalMinted + uint64(i))
	}
	return ids
}

// Allocate assigns amount consecutive ids starting at totalMinted to wallet
// and returns them. Fails with SupplyExhausted when the cap would be crossed.
func (s *Supply) Allocate(wallet domain.Address, amount int) ([]domain.TokenID, error) {
	if !s.CanAllocate(amount) {
		return nil, dErrors.New(dErrors.CodeSupplyExhausted,
			fmt.Sprintf("%d of %d minted, cannot allocate %d more", s.totalMinted, s.maxSupply, amount))
	}
	ids := s.NextIDs(amount)
	for _, id := range ids {
		s.owners[id] = wallet
	}
	s.totalMinted += uint64(amount)
	s.balances[wallet] += amount
	return ids, nil
}

// OwnerOf resolves the current owner of a minted token.
func (s *Supply) OwnerOf(id domain.TokenID) (domain.Address, error) {
	owner, ok := s.owners[id]
	if !ok {
		return domain.ZeroAddress, dErrors.New(dErrors.CodeUnknownToken, "token "+id.String()+" has not been minted")
	}
	return owner, nil
}

// Transfer reassigns ownership of a minted token.
func (s *Supply) Transfer(from, to domain.Address, id domain.TokenID) error {
	owner, err := s.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return dErrors.New(dErrors.CodeNotOwner, "token "+id.String()+" is not owned by "+from.Hex())
	}
	s.owners[id] = to
	s.balances[from]--
	s.balances[to]++
	return nil
}

// BalanceOf counts the tokens currently owned by wallet.
func (s *Supply) BalanceOf(wallet domain.Address) int {
	return s.balances[wallet]
}
