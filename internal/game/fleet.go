package game

import (
	"errors"
	"fmt"
	"sort"
)

// Ship is the footprint of one vessel: collinear, contiguous cells.
type Ship []Coord

// Fleet is the complete set of ships owned by one side.
type Fleet []Ship

// ShipSizes is the required fleet composition: one four, two threes, three
// twos, four singles.
var ShipSizes = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

var (
	ErrFleetComposition = errors.New("fleet sizes do not match required configuration")
	ErrShipOutOfBounds  = errors.New("ship coordinates out of bounds")
	ErrShipNotStraight  = errors.New("ship is not a straight line")
	ErrShipGapped       = errors.New("ship has gaps in its placement")
	ErrShipsTouch       = errors.New("ships cannot touch or overlap")
)

// Validate checks a candidate fleet against the placement rules, in order:
// composition, bounds, straightness and contiguity per ship, then mutual
// overlap/adjacency. The first failing rule is reported.
func (f Fleet) Validate() error {
	sizes := make([]int, len(f))
	for i, s := range f {
		sizes[i] = len(s)
	}
	sort.Ints(sizes)
	want := append([]int(nil), ShipSizes...)
	sort.Ints(want)
	if len(sizes) != len(want) {
		return ErrFleetComposition
	}
	for i := range want {
		if sizes[i] != want[i] {
			return ErrFleetComposition
		}
	}

	for _, ship := range f {
		for _, c := range ship {
			if !InBounds(c) {
				return ErrShipOutOfBounds
			}
		}
		if err := checkStraight(ship); err != nil {
			return err
		}
	}

	if f.touchOrOverlap() {
		return ErrShipsTouch
	}
	return nil
}

// checkStraight verifies a single ship is a gap-free horizontal or vertical
// run.
func checkStraight(ship Ship) error {
	if len(ship) == 1 {
		return nil
	}
	sameRow, sameCol := true, true
	for _, c := range ship[1:] {
		if c.Row != ship[0].Row {
			sameRow = false
		}
		if c.Col != ship[0].Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return ErrShipNotStraight
	}

	axis := make([]int, len(ship))
	for i, c := range ship {
		if sameRow {
			axis[i] = c.Col
		} else {
			axis[i] = c.Row
		}
	}
	sort.Ints(axis)
	for i := 1; i < len(axis); i++ {
		if axis[i] != axis[i-1]+1 {
			return ErrShipGapped
		}
	}
	return nil
}

// touchOrOverlap reports whether any two distinct ships share a cell or sit
// within each other's 8-neighbourhood.
func (f Fleet) touchOrOverlap() bool {
	owner := make(map[Coord]int, BoardSize*BoardSize)
	for i, ship := range f {
		for _, c := range ship {
			if prev, ok := owner[c]; ok && prev != i {
				return true
			}
			owner[c] = i
		}
	}
	for i, ship := range f {
		for _, c := range ship {
			for _, n := range Neighbors(c) {
				if other, ok := owner[n]; ok && other != i {
					return true
				}
			}
		}
	}
	return false
}

// ShipBoard renders the fleet onto a fresh ship-location board.
func (f Fleet) ShipBoard() ShipBoard {
	var b ShipBoard
	for _, ship := range f {
		for _, c := range ship {
			if InBounds(c) {
				b[c.Row][c.Col] = true
			}
		}
	}
	return b
}

// ShipAt returns the ship occupying c, if any.
func (f Fleet) ShipAt(c Coord) (Ship, bool) {
	for _, ship := range f {
		for _, sc := range ship {
			if sc == c {
				return ship, true
			}
		}
	}
	return nil, false
}

// Cells returns the total number of ship cells in the fleet.
func (f Fleet) Cells() int {
	n := 0
	for _, ship := range f {
		n += len(ship)
	}
	return n
}

func (f Fleet) String() string {
	return fmt.Sprintf("fleet of %d ships, %d cells", len(f), f.Cells())
}
