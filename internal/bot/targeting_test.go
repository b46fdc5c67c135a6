package bot

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/internal/game"
)

func newTestTracker(seed int64) *Tracker {
	return NewTracker(rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func TestTracker_StartsRandom(t *testing.T) {
	tr := newTestTracker(1)
	assert.Equal(t, ModeRandom, tr.Mode())
	assert.Empty(t, tr.Chain())
	assert.Equal(t, OrientNone, tr.Orientation())
}

func TestTracker_HitEntersHunt(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)
	assert.Equal(t, ModeHunt, tr.Mode())
	assert.Equal(t, []game.Coord{{Row: 4, Col: 4}}, tr.Chain())
}

func TestTracker_SecondAdjacentHitLocks(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)
	tr.Observe(game.Coord{Row: 4, Col: 5}, game.ResultHit)
	assert.Equal(t, ModeLocked, tr.Mode())
	assert.Equal(t, OrientHorizontal, tr.Orientation())

	tr = newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)
	tr.Observe(game.Coord{Row: 5, Col: 4}, game.ResultHit)
	assert.Equal(t, ModeLocked, tr.Mode())
	assert.Equal(t, OrientVertical, tr.Orientation())
}

func TestTracker_SinkResets(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)
	tr.Observe(game.Coord{Row: 4, Col: 5}, game.ResultHit)
	tr.Observe(game.Coord{Row: 4, Col: 6}, game.ResultSink)
	assert.Equal(t, ModeRandom, tr.Mode())
	assert.Empty(t, tr.Chain())
	assert.Equal(t, OrientNone, tr.Orientation())
}

func TestTracker_MissKeepsProgress(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)
	tr.Observe(game.Coord{Row: 3, Col: 4}, game.ResultMiss)
	assert.Equal(t, ModeHunt, tr.Mode())
	assert.Len(t, tr.Chain(), 1)
}

// A hit not cardinally adjacent to the chain replaces the lead: the old
// chain is dropped, the new hit starts a fresh hunt.
func TestTracker_ForeignHitReplacesLead(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)
	tr.Observe(game.Coord{Row: 4, Col: 5}, game.ResultHit)
	require.Equal(t, ModeLocked, tr.Mode())

	tr.Observe(game.Coord{Row: 0, Col: 0}, game.ResultHit)
	assert.Equal(t, ModeHunt, tr.Mode())
	assert.Equal(t, []game.Coord{{Row: 0, Col: 0}}, tr.Chain())
	assert.Equal(t, OrientNone, tr.Orientation())
}

func TestTracker_HuntProbesCardinalOrder(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 4, Col: 4}, game.ResultHit)

	var attack game.AttackBoard
	// No orientation: up comes first.
	assert.Equal(t, game.Coord{Row: 3, Col: 4}, tr.Next(&attack))

	attack[3][4] = game.CellMiss
	assert.Equal(t, game.Coord{Row: 5, Col: 4}, tr.Next(&attack))

	attack[5][4] = game.CellMiss
	assert.Equal(t, game.Coord{Row: 4, Col: 3}, tr.Next(&attack))

	attack[4][3] = game.CellMiss
	assert.Equal(t, game.Coord{Row: 4, Col: 5}, tr.Next(&attack))
}

func TestTracker_HuntPrefersLockedAxis(t *testing.T) {
	tr := newTestTracker(1)
	tr.chain = []game.Coord{{Row: 4, Col: 4}}
	tr.lastHit = game.Coord{Row: 4, Col: 4}
	tr.hasLast = true
	tr.mode = ModeHunt
	tr.orient = OrientHorizontal

	var attack game.AttackBoard
	assert.Equal(t, game.Coord{Row: 4, Col: 3}, tr.Next(&attack))
}

func TestTracker_HuntFallsBackToChain(t *testing.T) {
	tr := newTestTracker(1)
	tr.Observe(game.Coord{Row: 0, Col: 0}, game.ResultHit)
	tr.Observe(game.Coord{Row: 0, Col: 1}, game.ResultHit)
	require.Equal(t, ModeLocked, tr.Mode())
	tr.mode = ModeHunt // force hunt with a two-hit chain

	var attack game.AttackBoard
	// Box in the last hit (0,1); candidates remain only around (0,0).
	attack[0][0] = game.CellHit
	attack[0][1] = game.CellHit
	attack[0][2] = game.CellMiss
	attack[1][1] = game.CellMiss
	got := tr.Next(&attack)
	assert.Equal(t, game.Coord{Row: 1, Col: 0}, got)
}

// The locked probe works the low end to exhaustion, then the high end, and
// only then any internal gap. A miss does not close an end: the probe steps
// past it, up to the longest ship length, so a chain at C5 and E5 walks
// B5, A5, F5, G5, H5, I5 before falling back to the gap at D5.
func TestTracker_LockedEndsBeforeGap(t *testing.T) {
	tr := newTestTracker(1)
	tr.chain = []game.Coord{{Row: 4, Col: 2}, {Row: 4, Col: 4}}
	tr.lastHit = game.Coord{Row: 4, Col: 4}
	tr.hasLast = true
	tr.mode = ModeLocked
	tr.orient = OrientHorizontal

	var attack game.AttackBoard
	attack[4][2] = game.CellHit
	attack[4][4] = game.CellHit

	want := []game.Coord{
		{Row: 4, Col: 1}, // low end
		{Row: 4, Col: 0}, // past the low-end miss
		{Row: 4, Col: 5}, // high end
		{Row: 4, Col: 6},
		{Row: 4, Col: 7},
		{Row: 4, Col: 8}, // longest ship length past the high hit
		{Row: 4, Col: 3}, // internal gap, only once both ends are spent
	}
	for _, w := range want {
		got := tr.Next(&attack)
		assert.Equal(t, w, got)
		attack[got.Row][got.Col] = game.CellMiss
	}
}

func TestTracker_LockedVerticalSymmetry(t *testing.T) {
	tr := newTestTracker(1)
	tr.chain = []game.Coord{{Row: 2, Col: 7}, {Row: 3, Col: 7}}
	tr.lastHit = game.Coord{Row: 3, Col: 7}
	tr.hasLast = true
	tr.mode = ModeLocked
	tr.orient = OrientVertical

	var attack game.AttackBoard
	attack[2][7] = game.CellHit
	attack[3][7] = game.CellHit

	assert.Equal(t, game.Coord{Row: 1, Col: 7}, tr.Next(&attack))
	attack[1][7] = game.CellMiss
	assert.Equal(t, game.Coord{Row: 0, Col: 7}, tr.Next(&attack))
	attack[0][7] = game.CellMiss
	assert.Equal(t, game.Coord{Row: 4, Col: 7}, tr.Next(&attack))
}

func TestTracker_LockedStopsAtBoardEdge(t *testing.T) {
	tr := newTestTracker(1)
	tr.chain = []game.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	tr.lastHit = game.Coord{Row: 0, Col: 1}
	tr.hasLast = true
	tr.mode = ModeLocked
	tr.orient = OrientHorizontal

	var attack game.AttackBoard
	attack[0][0] = game.CellHit
	attack[0][1] = game.CellHit

	// Nothing left of column 0; the probe jumps to the high end.
	assert.Equal(t, game.Coord{Row: 0, Col: 2}, tr.Next(&attack))
}

func TestTracker_RandomAlwaysPicksEmpty(t *testing.T) {
	tr := newTestTracker(42)
	var attack game.AttackBoard
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if (r+c)%2 == 0 {
				attack[r][c] = game.CellMiss
			}
		}
	}
	for i := 0; i < 50; i++ {
		got := tr.Next(&attack)
		assert.Equal(t, game.CellEmpty, attack.Cell(got))
	}
}

// Driving the tracker against a real defender must sink the whole fleet
// within the board's cell budget, always selecting empty cells.
func TestTracker_SinksFleetWithinBudget(t *testing.T) {
	fleet := game.Fleet{
		{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}},
		{{Row: 0, Col: 5}, {Row: 0, Col: 6}, {Row: 0, Col: 7}},
		{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
		{{Row: 2, Col: 4}, {Row: 2, Col: 5}},
		{{Row: 2, Col: 7}, {Row: 2, Col: 8}},
		{{Row: 4, Col: 0}, {Row: 4, Col: 1}},
		{{Row: 4, Col: 3}},
		{{Row: 4, Col: 5}},
		{{Row: 4, Col: 7}},
		{{Row: 4, Col: 9}},
	}
	require.NoError(t, fleet.Validate())
	ships := fleet.ShipBoard()

	for seed := int64(0); seed < 5; seed++ {
		tr := newTestTracker(seed)
		var attack game.AttackBoard

		shots := 0
		for !game.AllSunk(&attack, fleet) {
			require.Less(t, shots, game.BoardSize*game.BoardSize, "seed %d exceeded budget", seed)
			c := tr.Next(&attack)
			require.Equal(t, game.CellEmpty, attack.Cell(c), "seed %d picked resolved cell", seed)
			res := game.ApplyMove(&attack, &ships, fleet, c)
			require.NotEqual(t, game.ResultInvalid, res)
			tr.Observe(c, res)
			shots++
		}
	}
}

func TestModeAndOrientationStrings(t *testing.T) {
	assert.Equal(t, "random", ModeRandom.String())
	assert.Equal(t, "hunt", ModeHunt.String())
	assert.Equal(t, "locked", ModeLocked.String())
	assert.Equal(t, "none", OrientNone.String())
	assert.Equal(t, "horizontal", OrientHorizontal.String())
	assert.Equal(t, "vertical", OrientVertical.String())
}
