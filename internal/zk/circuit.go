// Package zk holds the shot-proof circuit and its Groth16 plumbing. The
// defender commits to a salted Merkle root of its ship-location board, and
// every reported hit/miss bit carries a proof that the bit matches the
// committed board at the shot's cell index, without revealing anything else.
package zk

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"seabattle/internal/merkle"
)

// MerkleDepth mirrors the commitment tree shape.
const MerkleDepth = merkle.Depth

// ShotCircuit proves that the public Hit bit equals the committed cell at
// the public Index under the salted root Root = MiMC(Salt, treeRoot).
//
// The direction bits double as the binary decomposition of the leaf index,
// so the circuit binds the proof to the claimed Index for free.
type ShotCircuit struct {
	Cell frontend.Variable              `gnark:",secret"`
	Salt frontend.Variable              `gnark:",secret"`
	Path [MerkleDepth]frontend.Variable `gnark:",secret"`
	Dir  [MerkleDepth]frontend.Variable `gnark:",secret"`

	Root  frontend.Variable `gnark:",public"` // salted commitment root
	Index frontend.Variable `gnark:",public"` // row-major cell index
	Hit   frontend.Variable `gnark:",public"`
}

func (c *ShotCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.Cell)
	api.AssertIsEqual(c.Hit, c.Cell)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	// leaf hash
	h.Reset()
	h.Write(c.Cell)
	curr := h.Sum()

	// walk the path; accumulate the index from the direction bits
	idx := frontend.Variable(0)
	pow := 1
	for i := 0; i < MerkleDepth; i++ {
		api.AssertIsBoolean(c.Dir[i])
		idx = api.Add(idx, api.Mul(c.Dir[i], pow))
		pow <<= 1

		left := api.Select(c.Dir[i], c.Path[i], curr)
		right := api.Select(c.Dir[i], curr, c.Path[i])
		h.Reset()
		h.Write(left, right)
		curr = h.Sum()
	}
	api.AssertIsEqual(idx, c.Index)

	// salted root
	h.Reset()
	h.Write(c.Salt, curr)
	api.AssertIsEqual(h.Sum(), c.Root)
	return nil
}
