package game

// Result classifies the outcome of one attack. Invalid is an ordinary value
// the controller branches on, never an error.
type Result uint8

const (
	ResultInvalid Result = iota
	ResultMiss
	ResultHit
	ResultSink
)

func (r Result) String() string {
	switch r {
	case ResultMiss:
		return "miss"
	case ResultHit:
		return "hit"
	case ResultSink:
		return "sink"
	default:
		return "invalid"
	}
}

// ApplyMove resolves an attack at c against the defender described by ships
// and fleet, recording the outcome on attack. It is the only mutator of
// attack boards.
//
// Out-of-bounds coordinates and already-resolved cells yield ResultInvalid
// with no state change. A hit that completes a ship yields ResultSink and
// additionally marks every still-empty cell around the sunk ship as a miss:
// by the non-adjacency rule no other ship can live there, so the perimeter
// is dead search space.
func ApplyMove(attack *AttackBoard, ships *ShipBoard, fleet Fleet, c Coord) Result {
	if !InBounds(c) {
		return ResultInvalid
	}
	if attack.Cell(c) != CellEmpty {
		return ResultInvalid
	}

	if !ships.HasShip(c) {
		attack.setCell(c, CellMiss)
		return ResultMiss
	}

	attack.setCell(c, CellHit)
	ship, ok := fleet.ShipAt(c)
	if !ok || !shipSunk(attack, ship) {
		return ResultHit
	}
	closePerimeter(attack, ship)
	return ResultSink
}

func shipSunk(attack *AttackBoard, ship Ship) bool {
	for _, c := range ship {
		if attack.Cell(c) != CellHit {
			return false
		}
	}
	return true
}

func closePerimeter(attack *AttackBoard, ship Ship) {
	for _, c := range ship {
		for _, n := range Neighbors(c) {
			if attack.Cell(n) == CellEmpty {
				attack.setCell(n, CellMiss)
			}
		}
	}
}

// AllSunk reports whether every cell of every ship in fleet is marked hit on
// attack.
func AllSunk(attack *AttackBoard, fleet Fleet) bool {
	for _, ship := range fleet {
		if !shipSunk(attack, ship) {
			return false
		}
	}
	return true
}
