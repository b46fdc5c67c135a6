package bot

import (
	"errors"
	"math/rand"

	"seabattle/internal/game"
)

const (
	// maxFleetRestarts bounds how many times a wedged partial layout is
	// thrown away and restarted from scratch.
	maxFleetRestarts = 1000
	// maxShipTries bounds placement attempts for a single ship before the
	// whole layout is considered wedged.
	maxShipTries = 200
)

// RandomShip places a single ship of the given size at a random orientation
// and anchor, fully in bounds.
func RandomShip(rng *rand.Rand, size int) game.Ship {
	ship := make(game.Ship, size)
	if rng.Intn(2) == 0 { // horizontal
		row := rng.Intn(game.BoardSize)
		col := rng.Intn(game.BoardSize - size + 1)
		for i := 0; i < size; i++ {
			ship[i] = game.Coord{Row: row, Col: col + i}
		}
	} else {
		row := rng.Intn(game.BoardSize - size + 1)
		col := rng.Intn(game.BoardSize)
		for i := 0; i < size; i++ {
			ship[i] = game.Coord{Row: row + i, Col: col}
		}
	}
	return ship
}

// RandomFleet generates a valid random fleet, retrying each placement
// against the ships already on the board and restarting from scratch when a
// partial layout leaves no room. The finished fleet still goes through
// Validate before being returned.
func RandomFleet(rng *rand.Rand) (game.Fleet, error) {
	for restart := 0; restart < maxFleetRestarts; restart++ {
		fleet, ok := tryFleet(rng)
		if !ok {
			continue
		}
		if err := fleet.Validate(); err != nil {
			continue
		}
		return fleet, nil
	}
	return nil, errors.New("failed to generate a valid fleet")
}

func tryFleet(rng *rand.Rand) (game.Fleet, bool) {
	fleet := make(game.Fleet, 0, len(game.ShipSizes))
	// blocked covers every placed cell plus its 8-neighbourhood, so a
	// single lookup enforces the non-adjacency rule during placement.
	blocked := make(map[game.Coord]bool, game.BoardSize*game.BoardSize)

	for _, size := range game.ShipSizes {
		placed := false
		for try := 0; try < maxShipTries; try++ {
			ship := RandomShip(rng, size)
			if conflicts(ship, blocked) {
				continue
			}
			fleet = append(fleet, ship)
			for _, c := range ship {
				blocked[c] = true
				for _, n := range game.Neighbors(c) {
					blocked[n] = true
				}
			}
			placed = true
			break
		}
		if !placed {
			return nil, false
		}
	}
	return fleet, true
}

func conflicts(ship game.Ship, blocked map[game.Coord]bool) bool {
	for _, c := range ship {
		if blocked[c] {
			return true
		}
	}
	return false
}
