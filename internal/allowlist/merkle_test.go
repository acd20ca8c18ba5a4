package allowlist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

func wallet(i int) domain.Address {
	return domain.MustAddress(fmt.Sprintf("0x%040x", i+1))
}

func wallets(n int) []domain.Address {
	ws := make([]domain.Address, n)
	for i := range ws {
		ws[i] = wallet(i)
	}
	return ws
}

func TestVerifyMembers(t *testing.T) {
	// Property check across awkward sizes: single leaf, powers of two, odd
	// counts that force carried nodes at several levels.
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 33} {
		t.Run(fmt.Sprintf("%d leaves", n), func(t *testing.T) {
			ws := wallets(n)
			tree := BuildTree(ws)
			require.Equal(t, n, tree.Len())

			for _, w := range ws {
				proof, err := tree.Proof(w)
				require.NoError(t, err)
				assert.True(t, Verify(tree.Root(), proof, w), "member %s", w)
			}
		})
	}
}

func TestVerifyRejectsNonMembers(t *testing.T) {
	members := wallets(4)
	outsider := wallet(99)
	tree := BuildTree(members)

	// A stolen proof binds to the member's leaf, not the presenter's.
	stolen, err := tree.Proof(members[0])
	require.NoError(t, err)
	assert.False(t, Verify(tree.Root(), stolen, outsider))

	_, err = tree.Proof(outsider)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeVerificationFailure))
}

func TestVerifyUnsetRootAlwaysFails(t *testing.T) {
	tree := BuildTree(wallets(2))
	proof, err := tree.Proof(wallet(0))
	require.NoError(t, err)

	// An unset tier root closes the tier even for genuine members.
	assert.False(t, Verify(domain.ZeroHash, proof, wallet(0)))
}

func TestVerifyMalformedProof(t *testing.T) {
	ws := wallets(8)
	tree := BuildTree(ws)
	proof, err := tree.Proof(ws[3])
	require.NoError(t, err)

	assert.False(t, Verify(tree.Root(), proof[:len(proof)-1], ws[3]), "truncated proof")
	assert.False(t, Verify(tree.Root(), append([]domain.Hash{{}}, proof...), ws[3]), "padded proof")
	assert.False(t, Verify(tree.Root(), nil, ws[3]), "empty proof for multi-leaf tree")
}

func TestSingleLeafTree(t *testing.T) {
	w := wallet(0)
	tree := BuildTree([]domain.Address{w})

	assert.Equal(t, LeafHash(w), tree.Root())
	proof, err := tree.Proof(w)
	require.NoError(t, err)
	assert.Empty(t, proof)
	assert.True(t, Verify(tree.Root(), proof, w))
}

func TestRootIndependentOfInputOrder(t *testing.T) {
	ws := wallets(5)
	reversed := make([]domain.Address, len(ws))
	for i, w := range ws {
		reversed[len(ws)-1-i] = w
	}
	assert.Equal(t, BuildTree(ws).Root(), BuildTree(reversed).Root())
}

func TestDuplicateWalletsCollapse(t *testing.T) {
	ws := wallets(3)
	withDup := append([]domain.Address{ws[0]}, ws...)
	assert.Equal(t, BuildTree(ws).Root(), BuildTree(withDup).Root())
}

func TestEmptyTree(t *testing.T) {
	tree := BuildTree(nil)
	assert.True(t, tree.Root().IsZero())
	assert.Equal(t, 0, tree.Len())
}
