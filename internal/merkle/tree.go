// Package merkle builds the fixed-shape MiMC Merkle tree the fairness
// commitment is anchored in: one leaf per board cell (ship bit), padded to a
// power of two, hashed with the same MiMC instance the shot circuit uses.
package merkle

import (
	"errors"
	"math/big"

	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

const (
	// LeafCount is the padded leaf count: 100 board cells up to 128.
	LeafCount = 128
	// Depth is the resulting proof path length.
	Depth = 7
)

// feBytes encodes a BN254 field element as 32-byte big-endian, the input
// layout the MiMC hasher expects.
func feBytes(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 32 {
		return b
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// HashLeaf hashes a single cell bit, consistent with the in-circuit MiMC.
func HashLeaf(bit uint8) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(new(big.Int).SetUint64(uint64(bit))))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashNodes merges two child hashes, consistent with the in-circuit MiMC.
func HashNodes(left, right *big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(left))
	h.Write(feBytes(right))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// Tree is a fixed-size binary Merkle tree stored level by level.
// Levels[0] holds the leaf hashes, Levels[Depth] the root.
type Tree struct {
	Levels [][]*big.Int `json:"levels"`
}

// Build hashes the cell bits into leaves, pads to LeafCount with the hash of
// an empty cell, and builds the full tree.
func Build(bits []uint8) (*Tree, error) {
	if len(bits) > LeafCount {
		return nil, errors.New("too many leaves")
	}

	zeroLeaf := HashLeaf(0)
	leaves := make([]*big.Int, LeafCount)
	for i := 0; i < LeafCount; i++ {
		if i < len(bits) {
			leaves[i] = HashLeaf(bits[i])
		} else {
			leaves[i] = new(big.Int).Set(zeroLeaf)
		}
	}

	levels := [][]*big.Int{leaves}
	for n := LeafCount; n > 1; n /= 2 {
		prev := levels[len(levels)-1]
		up := make([]*big.Int, n/2)
		for i := range up {
			up[i] = HashNodes(prev[2*i], prev[2*i+1])
		}
		levels = append(levels, up)
	}
	return &Tree{Levels: levels}, nil
}

// Root returns a copy of the tree root.
func (t *Tree) Root() *big.Int {
	return new(big.Int).Set(t.Levels[len(t.Levels)-1][0])
}

// Proof returns the sibling hashes and direction bits for leaf idx.
// dir[i]=0 means the running node is a left child at level i, dir[i]=1 a
// right child; read least-significant-first the bits spell out idx itself.
func (t *Tree) Proof(idx int) (siblings []*big.Int, dir []uint8, err error) {
	if idx < 0 || idx >= LeafCount {
		return nil, nil, errors.New("leaf index out of range")
	}
	siblings = make([]*big.Int, 0, Depth)
	dir = make([]uint8, 0, Depth)
	cur := idx
	for level := 0; level < Depth; level++ {
		if cur%2 == 1 {
			siblings = append(siblings, new(big.Int).Set(t.Levels[level][cur-1]))
			dir = append(dir, 1)
		} else {
			siblings = append(siblings, new(big.Int).Set(t.Levels[level][cur+1]))
			dir = append(dir, 0)
		}
		cur /= 2
	}
	return siblings, dir, nil
}
