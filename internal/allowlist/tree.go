package allowlist

import (
	"bytes"
	"sort"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

// Tree is a sorted-pair Merkle tree over wallet leaves. The service itself
// only ever verifies proofs; the tree builder exists for the root-generation
// tool and for tests that need real proofs. An odd node at any level is
// carried up unhashed, matching the proof issuer's construction.
type Tree struct {
	layers [][]domain.Hash
	index  map[domain.Hash]int
}

// BuildTree constructs a tree from the given wallets. Leaves are deduplicated
// and sorted so the root is independent of input order.
func BuildTree(wallets []domain.Address) *Tree {
	seen := make(map[domain.Hash]struct{}, len(wallets))
	leaves := make([]domain.Hash, 0, len(wallets))
	for _, w := range wallets {
		leaf := LeafHash(w)
		if _, dup := seen[leaf]; dup {
			continue
		}
		seen[leaf] = struct{}{}
		leaves = append(leaves, leaf)
	}
	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i][:], leaves[j][:]) < 0
	})

	index := make(map[domain.Hash]int, len(leaves))
	for i, leaf := range leaves {
		index[leaf] = i
	}

	layers := [][]domain.Hash{leaves}
	for current := leaves; len(current) > 1; {
		next := make([]domain.Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 == len(current) {
				next = append(next, current[i])
				continue
			}
			next = append(next, hashPair(current[i], current[i+1]))
		}
		layers = append(layers, next)
		current = next
	}

	return &Tree{layers: layers, index: index}
}

// Root returns the committed root, or the zero hash for an empty tree.
func (t *Tree) Root() domain.Hash {
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return domain.ZeroHash
	}
	return top[0]
}

// Proof returns the sibling path for the given wallet, ordered leaf to root.
func (t *Tree) Proof(wallet domain.Address) ([]domain.Hash, error) {
	pos, ok := t.index[LeafHash(wallet)]
	if !ok {
		return nil, dErrors.New(dErrors.CodeVerificationFailure, "wallet not in allowlist: "+wallet.Hex())
	}

	var proof []domain.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := pos ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		pos /= 2
	}
	return proof, nil
}

// Len reports the number of distinct leaves.
func (t *Tree) Len() int { return len(t.layers[0]) }
