// Package allowlist implements Merkle-proof membership checks for the tiered
// community sale. Verification is a pure function over (root, proof, wallet)
// so the same code serves all three tiers and stays trivially unit-testable.
//
// Hashing matches the off-chain proof issuer: leaves are keccak256 of the
// 20-byte wallet, and interior nodes hash the sorted concatenation of their
// children, so a proof verifies regardless of leaf position.
package allowlist

import (
	"bytes"

	"golang.org/x/crypto/sha3"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

// LeafHash computes the allowlist leaf for a wallet.
func LeafHash(wallet domain.Address) domain.Hash {
	return keccak256(wallet.Bytes())
}

// Verify recomputes a candidate root by folding the proof over the wallet's
// leaf and compares it with the committed root. It returns false, never an
// error, on any malformed input: an unset root, a wrong-length proof, or a
// proof lifted from another wallet all simply fail membership.
func Verify(root domain.Hash, proof []domain.Hash, wallet domain.Address) bool {
	if root.IsZero() {
		return false
	}
	node := LeafHash(wallet)
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	return node == root
}

// hashPair combines two nodes in canonical order. Sorting before hashing is
// what lets proof construction and verification agree on direction.
func hashPair(a, b domain.Hash) domain.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return keccak256(a[:], b[:])
}

func keccak256(chunks ...[]byte) domain.Hash {
	d := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		d.Write(c)
	}
	var h domain.Hash
	copy(h[:], d.Sum(nil))
	return h
}
