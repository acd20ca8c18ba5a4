package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

func TestParseAddress(t *testing.T) {
	t.Run("round trips lowercase hex", func(t *testing.T) {
		a, err := ParseAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
		require.NoError(t, err)
		assert.Equal(t, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", a.Hex())
	})

	t.Run("normalizes mixed case", func(t *testing.T) {
		a, err := ParseAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
		require.NoError(t, err)
		assert.Equal(t, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", a.Hex())
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		_, err := ParseAddress("  0x70997970c51812dc3a010c7d01b50e0d17dc79c8 ")
		assert.NoError(t, err)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{
			"",
			"0x",
			"70997970c51812dc3a010c7d01b50e0d17dc79c8", // missing prefix
			"0x7099", // too short
			"0x70997970c51812dc3a010c7d01b50e0d17dc79c8ff", // too long
			"0xzz997970c51812dc3a010c7d01b50e0d17dc79c8",   // not hex
		} {
			_, err := ParseAddress(in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), "input %q", in)
		}
	})
}

func TestZeroAddress(t *testing.T) {
	assert.True(t, ZeroAddress.IsZero())
	assert.Equal(t, "0x0000000000000000000000000000000000000000", ZeroAddress.Hex())

	a := MustAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	assert.False(t, a.IsZero())
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("0x1b16b1df538ba12dc3f97edbb85caa7050d46c148134290feba80f8236c83db9")
	require.NoError(t, err)
	assert.Equal(t, "0x1b16b1df538ba12dc3f97edbb85caa7050d46c148134290feba80f8236c83db9", h.Hex())
	assert.False(t, h.IsZero())

	_, err = ParseHash("0x1b16b1df")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	assert.True(t, ZeroHash.IsZero())
}
