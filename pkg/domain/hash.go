package domain

import (
	"encoding/hex"
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Hash is an opaque 32-byte value: a Merkle root, leaf, or proof element.
// The zero value is "unset"; a tier with a zero root admits nobody.
type Hash [32]byte

// ZeroHash is the unset root.
var ZeroHash Hash

// ParseHash accepts a 0x-prefixed 64-digit hex string.
func ParseHash(s string) (Hash, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(s), "0x")
	if !ok || len(raw) != 64 || !govalidator.IsHexadecimal(raw) {
		return Hash{}, dErrors.New(dErrors.CodeBadRequest, "invalid 32-byte hash: "+s)
	}
	var h Hash
	if _, err := hex.Decode(h[:], []byte(strings.ToLower(raw))); err != nil {
		return Hash{}, dErrors.New(dErrors.CodeBadRequest, "invalid 32-byte hash: "+s)
	}
	return h, nil
}

func MustHash(s string) Hash {
	h, err := ParseHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

func (h Hash) IsZero() bool { return h == ZeroHash }

func (h Hash) Bytes() []byte { return h[:] }
