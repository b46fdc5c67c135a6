package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/internal/game"
)

func TestNextMove_ParsesCoordinate(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("c7\n"), &out)

	var attack game.AttackBoard
	c, err := p.NextMove(&attack)
	require.NoError(t, err)
	assert.Equal(t, game.Coord{Row: 6, Col: 2}, c)
}

func TestNextMove_RepromptsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("zz\nK5\nA0\nB2\n"), &out)

	var attack game.AttackBoard
	c, err := p.NextMove(&attack)
	require.NoError(t, err)
	assert.Equal(t, game.Coord{Row: 1, Col: 1}, c)
	assert.Contains(t, out.String(), "Column A-J, row 1-10")
}

func TestNextMove_RejectsResolvedCell(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("A1\nA2\n"), &out)

	var attack game.AttackBoard
	attack[0][0] = game.CellMiss
	c, err := p.NextMove(&attack)
	require.NoError(t, err)
	assert.Equal(t, game.Coord{Row: 1, Col: 0}, c)
	assert.Contains(t, out.String(), "already attacked")
}

func TestNextMove_InputExhausted(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	var attack game.AttackBoard
	_, err := p.NextMove(&attack)
	assert.ErrorIs(t, err, ErrInputExhausted)
}

// validFleetInput enters one well-formed ship per required size, mixing the
// accepted notations.
func validFleetInput() string {
	lines := []string{
		"A1-D1",  // 4
		"F1,G1,H1",
		"A3 B3 C3",
		"E3-F3",
		"H3-I3",
		"A5-B5",
		"D5",
		"F5",
		"H5",
		"J5",
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestFleet_AcceptsAllNotations(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(validFleetInput()), &out)

	fleet, err := p.Fleet()
	require.NoError(t, err)
	require.Len(t, fleet, len(game.ShipSizes))
	assert.NoError(t, fleet.Validate())
	assert.Equal(t, game.Ship{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}}, fleet[0])
}

func TestFleet_SizeMismatchReprompts(t *testing.T) {
	var out bytes.Buffer
	// First line has 3 cells where 4 are required.
	input := "A1-C1\n" + validFleetInput()
	p := NewPrompter(strings.NewReader(input), &out)

	fleet, err := p.Fleet()
	require.NoError(t, err)
	assert.NoError(t, fleet.Validate())
	assert.Contains(t, out.String(), "expected 4 coordinates, got 3")
}

// A fleet that parses but fails validation triggers full re-entry.
func TestFleet_ValidationFailureRestartsEntry(t *testing.T) {
	var out bytes.Buffer
	// First attempt: ships 1 and 2 touch (D1 and E1 are adjacent).
	bad := []string{
		"A1-D1",
		"E1,F1,G1",
		"A3 B3 C3",
		"E3-F3",
		"H3-I3",
		"A5-B5",
		"D5",
		"F5",
		"H5",
		"J5",
	}
	input := strings.Join(bad, "\n") + "\n" + validFleetInput()
	p := NewPrompter(strings.NewReader(input), &out)

	fleet, err := p.Fleet()
	require.NoError(t, err)
	assert.NoError(t, fleet.Validate())
	assert.Contains(t, out.String(), "Invalid fleet")
}

func TestFleet_InputExhausted(t *testing.T) {
	p := NewPrompter(strings.NewReader("A1-D1\n"), &bytes.Buffer{})
	_, err := p.Fleet()
	assert.ErrorIs(t, err, ErrInputExhausted)
}
