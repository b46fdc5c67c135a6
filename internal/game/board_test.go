package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(Coord{Row: 0, Col: 0}))
	assert.True(t, InBounds(Coord{Row: 9, Col: 9}))
	assert.False(t, InBounds(Coord{Row: -1, Col: 0}))
	assert.False(t, InBounds(Coord{Row: 0, Col: 10}))
	assert.False(t, InBounds(Coord{Row: 10, Col: 3}))
}

func TestNeighbors_Corner(t *testing.T) {
	got := Neighbors(Coord{Row: 0, Col: 0})
	require.Len(t, got, 3)
	assert.ElementsMatch(t, []Coord{{0, 1}, {1, 0}, {1, 1}}, got)
}

func TestNeighbors_Center(t *testing.T) {
	got := Neighbors(Coord{Row: 5, Col: 5})
	assert.Len(t, got, 8)
}

func TestNeighbors_Edge(t *testing.T) {
	got := Neighbors(Coord{Row: 0, Col: 5})
	assert.Len(t, got, 5)
}

func TestCoordIndex(t *testing.T) {
	assert.Equal(t, 0, Coord{Row: 0, Col: 0}.Index())
	assert.Equal(t, 99, Coord{Row: 9, Col: 9}.Index())
	assert.Equal(t, 42, Coord{Row: 4, Col: 2}.Index())
}

func TestShipBoardFlatten(t *testing.T) {
	var b ShipBoard
	b[0][0] = true
	b[9][9] = true
	flat := b.Flatten()
	require.Len(t, flat, 100)
	assert.Equal(t, uint8(1), flat[0])
	assert.Equal(t, uint8(1), flat[99])
	assert.Equal(t, uint8(0), flat[50])
}

func TestAttackBoardHasEmpty(t *testing.T) {
	var b AttackBoard
	assert.True(t, b.HasEmpty())

	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			b[r][c] = CellMiss
		}
	}
	assert.False(t, b.HasEmpty())

	b[3][7] = CellEmpty
	assert.True(t, b.HasEmpty())
}
