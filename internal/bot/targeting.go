package bot

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"seabattle/internal/game"
)

// Mode is the targeting phase the bot is in.
type Mode uint8

const (
	// ModeRandom: no active lead, shoot an untried cell at random.
	ModeRandom Mode = iota
	// ModeHunt: one or more unconfirmed hits, probe cardinal neighbours.
	ModeHunt
	// ModeLocked: orientation known, finish the ship along its axis.
	ModeLocked
)

func (m Mode) String() string {
	switch m {
	case ModeHunt:
		return "hunt"
	case ModeLocked:
		return "locked"
	default:
		return "random"
	}
}

// Orientation is the inferred axis of the ship being pursued.
type Orientation uint8

const (
	OrientNone Orientation = iota
	OrientHorizontal
	OrientVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientHorizontal:
		return "horizontal"
	case OrientVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Tracker is the bot's targeting state machine. It tracks a single lead:
// the ordered chain of hits believed to belong to one not-yet-sunk ship.
// A hit that is not cardinally adjacent to the chain replaces the lead
// outright; the old chain is dropped. That single-lead behaviour is a known
// heuristic limitation, kept intentionally.
type Tracker struct {
	mode    Mode
	chain   []game.Coord
	lastHit game.Coord
	hasLast bool
	orient  Orientation

	rng *rand.Rand
	log zerolog.Logger
}

// NewTracker builds a tracker in random mode. rng must be non-nil.
func NewTracker(rng *rand.Rand, log zerolog.Logger) *Tracker {
	return &Tracker{rng: rng, log: log.With().Str("component", "targeting").Logger()}
}

// Mode returns the current targeting phase.
func (t *Tracker) Mode() Mode { return t.mode }

// Orientation returns the inferred axis, if any.
func (t *Tracker) Orientation() Orientation { return t.orient }

// Chain returns a copy of the current hit-chain.
func (t *Tracker) Chain() []game.Coord {
	return append([]game.Coord(nil), t.chain...)
}

func (t *Tracker) reset() {
	t.mode = ModeRandom
	t.chain = nil
	t.hasLast = false
	t.orient = OrientNone
}

// Next selects the bot's next attack coordinate from its own attack board.
// Every dead end degrades to a looser mode, terminating at random selection,
// so a coordinate is always produced while the board has an empty cell.
func (t *Tracker) Next(attack *game.AttackBoard) game.Coord {
	switch t.mode {
	case ModeHunt:
		return t.huntMove(attack)
	case ModeLocked:
		return t.lockedMove(attack)
	default:
		return t.randomMove(attack)
	}
}

func (t *Tracker) randomMove(attack *game.AttackBoard) game.Coord {
	open := make([]game.Coord, 0, game.BoardSize*game.BoardSize)
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			cell := game.Coord{Row: r, Col: c}
			if attack.Cell(cell) == game.CellEmpty {
				open = append(open, cell)
			}
		}
	}
	if len(open) == 0 {
		// Unreachable in a well-formed game; any in-bounds cell will do.
		return game.Coord{Row: t.rng.Intn(game.BoardSize), Col: t.rng.Intn(game.BoardSize)}
	}
	return open[t.rng.Intn(len(open))]
}

// probeOrder is the cardinal offsets to try from a hit, preferred axis
// first when an orientation is known.
func (t *Tracker) probeOrder() [4][2]int {
	switch t.orient {
	case OrientHorizontal:
		return [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	case OrientVertical:
		return [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	default:
		return [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	}
}

func (t *Tracker) huntMove(attack *game.AttackBoard) game.Coord {
	if !t.hasLast {
		t.reset()
		return t.randomMove(attack)
	}

	dirs := t.probeOrder()
	for _, d := range dirs {
		n := game.Coord{Row: t.lastHit.Row + d[0], Col: t.lastHit.Col + d[1]}
		if game.InBounds(n) && attack.Cell(n) == game.CellEmpty {
			return n
		}
	}

	// Nothing around the last hit; probe around the rest of the chain in
	// insertion order, adopting the first coordinate that yields a candidate.
	for _, hit := range t.chain {
		if hit == t.lastHit {
			continue
		}
		for _, d := range dirs {
			n := game.Coord{Row: hit.Row + d[0], Col: hit.Col + d[1]}
			if game.InBounds(n) && attack.Cell(n) == game.CellEmpty {
				t.lastHit = hit
				return n
			}
		}
	}

	// Dead end: the chain has no open neighbours left.
	t.log.Debug().Msg("hunt dead end, falling back to random")
	t.reset()
	return t.randomMove(attack)
}

func (t *Tracker) lockedMove(attack *game.AttackBoard) game.Coord {
	if len(t.chain) < 2 {
		t.mode = ModeHunt
		return t.huntMove(attack)
	}
	if t.orient == OrientNone {
		t.inferOrientation()
		if t.orient == OrientNone {
			t.mode = ModeHunt
			return t.huntMove(attack)
		}
	}

	sorted := sortedChain(t.chain)
	if t.orient == OrientHorizontal {
		if c, ok := t.axisProbe(attack, sorted, true); ok {
			return c
		}
	} else {
		if c, ok := t.axisProbe(attack, sorted, false); ok {
			return c
		}
	}

	t.log.Debug().Msg("locked axis exhausted, falling back to hunt")
	t.mode = ModeHunt
	return t.huntMove(attack)
}

// axisProbe searches along the locked axis: first up to four cells past the
// low end of the chain, then past the high end, then any internal gap
// between consecutive hits. Ends before gaps: a gap inside the span only
// matters once both extensions are exhausted.
func (t *Tracker) axisProbe(attack *game.AttackBoard, sorted []game.Coord, horizontal bool) (game.Coord, bool) {
	fixed := sorted[0].Row
	if !horizontal {
		fixed = sorted[0].Col
	}
	axisOf := func(c game.Coord) int {
		if horizontal {
			return c.Col
		}
		return c.Row
	}
	at := func(axis int) game.Coord {
		if horizontal {
			return game.Coord{Row: fixed, Col: axis}
		}
		return game.Coord{Row: axis, Col: fixed}
	}

	low, high := axisOf(sorted[0]), axisOf(sorted[len(sorted)-1])
	for off := 1; off <= longestShip(); off++ {
		axis := low - off
		if axis < 0 {
			break
		}
		if attack.Cell(at(axis)) == game.CellEmpty {
			return at(axis), true
		}
	}
	for off := 1; off <= longestShip(); off++ {
		axis := high + off
		if axis >= game.BoardSize {
			break
		}
		if attack.Cell(at(axis)) == game.CellEmpty {
			return at(axis), true
		}
	}

	for i := 0; i < len(sorted)-1; i++ {
		from, to := axisOf(sorted[i]), axisOf(sorted[i+1])
		for axis := from + 1; axis < to; axis++ {
			if attack.Cell(at(axis)) == game.CellEmpty {
				return at(axis), true
			}
		}
	}
	return game.Coord{}, false
}

func longestShip() int {
	max := 0
	for _, s := range game.ShipSizes {
		if s > max {
			max = s
		}
	}
	return max
}

// Observe feeds the result of the bot's own attack at c back into the state
// machine.
func (t *Tracker) Observe(c game.Coord, res game.Result) {
	switch res {
	case game.ResultSink:
		// Ship finished; drop the lead entirely.
		t.reset()
	case game.ResultHit:
		t.observeHit(c)
	case game.ResultMiss:
		// A miss never discards partial progress, but it can still unlock
		// the axis if the chain already determines one.
		if t.mode == ModeHunt && len(t.chain) >= 2 {
			t.inferOrientation()
			if t.orient != OrientNone {
				t.mode = ModeLocked
			}
		}
	}
	t.log.Debug().
		Stringer("result", res).
		Stringer("mode", t.mode).
		Stringer("orientation", t.orient).
		Int("chain", len(t.chain)).
		Msg("observed shot")
}

func (t *Tracker) observeHit(c game.Coord) {
	if len(t.chain) == 0 {
		t.chain = []game.Coord{c}
		t.lastHit = c
		t.hasLast = true
		t.mode = ModeHunt
		return
	}

	if t.sameShip(c) && !t.inChain(c) {
		t.chain = append(t.chain, c)
		t.lastHit = c
		t.hasLast = true
		if len(t.chain) >= 2 {
			t.inferOrientation()
			if t.orient != OrientNone {
				t.mode = ModeLocked
			}
		}
		return
	}

	// Hit on a different ship: restart the pursuit from it. The previous
	// lead is dropped, not queued.
	t.chain = []game.Coord{c}
	t.lastHit = c
	t.hasLast = true
	t.mode = ModeHunt
	t.orient = OrientNone
}

// sameShip judges whether c belongs to the pursued ship: cardinally adjacent
// to some coordinate already in the chain.
func (t *Tracker) sameShip(c game.Coord) bool {
	for _, hit := range t.chain {
		dr, dc := hit.Row-c.Row, hit.Col-c.Col
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		if dr+dc == 1 {
			return true
		}
	}
	return false
}

func (t *Tracker) inChain(c game.Coord) bool {
	for _, hit := range t.chain {
		if hit == c {
			return true
		}
	}
	return false
}

// inferOrientation resolves the axis once all chain entries share a row or a
// column; otherwise the orientation is cleared.
func (t *Tracker) inferOrientation() {
	if len(t.chain) < 2 {
		return
	}
	sameRow, sameCol := true, true
	for _, c := range t.chain[1:] {
		if c.Row != t.chain[0].Row {
			sameRow = false
		}
		if c.Col != t.chain[0].Col {
			sameCol = false
		}
	}
	switch {
	case sameRow:
		t.orient = OrientHorizontal
	case sameCol:
		t.orient = OrientVertical
	default:
		t.orient = OrientNone
	}
}

func sortedChain(chain []game.Coord) []game.Coord {
	out := append([]game.Coord(nil), chain...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
