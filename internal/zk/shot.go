package zk

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"seabattle/internal/game"
	"seabattle/internal/merkle"
)

// Commitment is the defender's secret: the committed board, its tree, the
// blinding salt, and the public salted root. Serializable so an offline
// audit can re-prove any shot.
type Commitment struct {
	Board   game.ShipBoard `json:"board"`
	Tree    *merkle.Tree   `json:"tree"`
	SaltHex string         `json:"saltHex"`
	RootHex string         `json:"rootHex"`
}

// Commit builds the salted commitment for a ship-location board. The salt
// makes identical boards commit to distinct roots.
func Commit(board *game.ShipBoard) (*Commitment, error) {
	tree, err := merkle.Build(board.Flatten())
	if err != nil {
		return nil, err
	}

	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return nil, err
	}
	salt := new(big.Int).SetBytes(saltBytes)
	root := merkle.HashNodes(salt, tree.Root())

	return &Commitment{
		Board:   *board,
		Tree:    tree,
		SaltHex: fmt.Sprintf("0x%x", salt),
		RootHex: fmt.Sprintf("0x%x", root),
	}, nil
}

// Root parses the public salted root.
func (c *Commitment) Root() (*big.Int, error) {
	return parseHex(c.RootHex)
}

func (c *Commitment) salt() (*big.Int, error) {
	return parseHex(c.SaltHex)
}

func parseHex(s string) (*big.Int, error) {
	if len(s) < 3 || s[:2] != "0x" {
		return nil, fmt.Errorf("malformed hex value %q", s)
	}
	v, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("malformed hex value %q", s)
	}
	return v, nil
}

// ShotPublic is the public statement of one shot proof.
type ShotPublic struct {
	Root  *big.Int `json:"root"`
	Index int      `json:"index"`
	Hit   uint8    `json:"hit"`
}

// ShotProof is a serialized Groth16 proof plus its public statement.
type ShotProof struct {
	Proof  []byte     `json:"proof"`
	Public ShotPublic `json:"public"`
}

func compileShotCircuit() (constraint.ConstraintSystem, error) {
	var circuit ShotCircuit
	return frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
}

// ProveShot produces a proof that the board committed in com carries the bit
// it does at c. The reported bit is part of the public statement.
func ProveShot(keysDir string, com *Commitment, c game.Coord) (*ShotProof, error) {
	if !game.InBounds(c) {
		return nil, errors.New("coordinate out of bounds")
	}
	salt, err := com.salt()
	if err != nil {
		return nil, err
	}
	root, err := com.Root()
	if err != nil {
		return nil, err
	}

	idx := c.Index()
	bit := uint8(0)
	if com.Board.HasShip(c) {
		bit = 1
	}
	path, dir, err := com.Tree.Proof(idx)
	if err != nil {
		return nil, err
	}

	var assign ShotCircuit
	assign.Cell = bit
	assign.Salt = salt
	for i := 0; i < MerkleDepth; i++ {
		assign.Path[i] = path[i]
		assign.Dir[i] = dir[i]
	}
	assign.Root = root
	assign.Index = idx
	assign.Hit = bit

	cs, err := compileShotCircuit()
	if err != nil {
		return nil, err
	}
	pk, err := readPK(pkPath(keysDir))
	if err != nil {
		return nil, err
	}
	wit, err := frontend.NewWitness(&assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	proof, err := groth16.Prove(cs, pk, wit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, err
	}
	return &ShotProof{
		Proof: buf.Bytes(),
		Public: ShotPublic{
			Root:  new(big.Int).Set(root),
			Index: idx,
			Hit:   bit,
		},
	}, nil
}

// VerifyShot checks a shot proof against the expected commitment root.
func VerifyShot(vkPath string, sp *ShotProof, root *big.Int) (bool, error) {
	if sp.Public.Root == nil {
		return false, errors.New("proof payload missing public root")
	}
	if sp.Public.Root.Cmp(root) != 0 {
		return false, errors.New("proof root does not match commitment root")
	}
	if sp.Public.Hit != 0 && sp.Public.Hit != 1 {
		return false, errors.New("invalid hit public output")
	}

	var pubAssign ShotCircuit
	pubAssign.Root = root
	pubAssign.Index = sp.Public.Index
	pubAssign.Hit = sp.Public.Hit
	pubWit, err := frontend.NewWitness(&pubAssign, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, err
	}

	vk, err := readVK(vkPath)
	if err != nil {
		return false, err
	}
	pr := groth16.NewProof(ecc.BN254)
	if _, err := pr.ReadFrom(bytes.NewReader(sp.Proof)); err != nil {
		return false, err
	}
	if err := groth16.Verify(pr, vk, pubWit); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureKeys makes sure a usable proving/verifying key pair exists in dir,
// generating one if the files are missing or unreadable.
func EnsureKeys(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if vk, _ := readVK(VKPath(dir)); vk != nil {
		if pk, _ := readPK(pkPath(dir)); pk != nil {
			return nil
		}
	}

	cs, err := compileShotCircuit()
	if err != nil {
		return err
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return err
	}
	if err := writeKey(VKPath(dir), vk); err != nil {
		return err
	}
	return writeKey(pkPath(dir), pk)
}

// VKPath returns the verifying key path under dir.
func VKPath(dir string) string { return filepath.Join(dir, "shot.vk") }

func pkPath(dir string) string { return filepath.Join(dir, "shot.pk") }

func writeKey(path string, key io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = key.WriteTo(f)
	return err
}

func readVK(path string) (groth16.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vk := groth16.NewVerifyingKey(ecc.BN254)
	_, err = vk.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return vk, nil
}

func readPK(path string) (groth16.ProvingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pk := groth16.NewProvingKey(ecc.BN254)
	_, err = pk.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return pk, nil
}
