// Package domain holds the value types shared by every layer of the issuance
// ledger: wallet addresses, 32-byte hashes, and token identifiers.
package domain

import (
	"encoding/hex"
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Address is a 20-byte wallet identifier, rendered as 0x-prefixed lowercase
// hex. The zero value doubles as the null address used in issuance events.
type Address [20]byte

// ZeroAddress is the null wallet, the "from" side of every mint event.
var ZeroAddress Address

// ParseAddress accepts a 0x-prefixed 40-digit hex string. Casing is not
// significant; mixed-case checksums are accepted but not verified.
func ParseAddress(s string) (Address, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(s), "0x")
	if !ok || len(raw) != 40 || !govalidator.IsHexadecimal(raw) {
		return Address{}, dErrors.New(dErrors.CodeBadRequest, "invalid wallet address: "+s)
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(strings.ToLower(raw))); err != nil {
		return Address{}, dErrors.New(dErrors.CodeBadRequest, "invalid wallet address: "+s)
	}
	return a, nil
}

// MustAddress is for tests and wiring code with known-good constants.
func MustAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string { return a.Hex() }

func (a Address) IsZero() bool { return a == ZeroAddress }

func (a Address) Bytes() []byte { return a[:] }
