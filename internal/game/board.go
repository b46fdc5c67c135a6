package game

// BoardSize is the side length of both grids.
const BoardSize = 10

// Coord addresses a cell as (row, col), both in [0, BoardSize).
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellState is the attack-board state of a single cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellHit
	CellMiss
)

func (s CellState) String() string {
	switch s {
	case CellHit:
		return "H"
	case CellMiss:
		return "M"
	default:
		return "."
	}
}

// AttackBoard records one side's shot history against the opponent's grid.
// Mutated only by ApplyMove.
type AttackBoard [BoardSize][BoardSize]CellState

// ShipBoard marks where a fleet's ships sit. Derived once from a validated
// fleet and read-only afterwards.
type ShipBoard [BoardSize][BoardSize]bool

// InBounds reports whether c lies on the board.
func InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, // cardinal
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1}, // diagonal
}

// Neighbors returns the in-bounds cells adjacent to c, diagonals included.
func Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 8)
	for _, d := range neighborOffsets {
		n := Coord{Row: c.Row + d[0], Col: c.Col + d[1]}
		if InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Cell returns the state at c. Callers keep coordinates in bounds.
func (b *AttackBoard) Cell(c Coord) CellState {
	return b[c.Row][c.Col]
}

func (b *AttackBoard) setCell(c Coord, s CellState) {
	b[c.Row][c.Col] = s
}

// HasEmpty reports whether any cell is still unresolved.
func (b *AttackBoard) HasEmpty() bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] == CellEmpty {
				return true
			}
		}
	}
	return false
}

// HasShip reports whether a ship occupies c.
func (b *ShipBoard) HasShip(c Coord) bool {
	return b[c.Row][c.Col]
}

// Flatten returns the board as BoardSize*BoardSize bits in row-major order,
// the leaf layout used by the commitment tree.
func (b *ShipBoard) Flatten() []uint8 {
	out := make([]uint8, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

// Index maps c to its row-major cell index.
func (c Coord) Index() int {
	return c.Row*BoardSize + c.Col
}
