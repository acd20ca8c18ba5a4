package domain

import "strconv"

// TokenID is a 0-based sequential token number. IDs are never reused and never
// destroyed; id < maxSupply always holds for an allocated token.
type TokenID uint64

func (id TokenID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
