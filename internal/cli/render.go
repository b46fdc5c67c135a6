// Package cli is the terminal surface: board rendering and the prompts for
// fleet entry and moves.
package cli

import (
	"fmt"
	"io"
	"strings"

	"seabattle/internal/game"
)

// RenderBoards prints both grids: the player's own board with ships visible,
// then the player's view of the bot's board (hits and misses only).
func RenderBoards(w io.Writer, s *game.State) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Turn: %d\n", s.TurnNumber()+1)
	fmt.Fprintf(w, "Current player: %s\n", s.Turn())
	fmt.Fprintln(w, strings.Repeat("=", 50))

	fmt.Fprintln(w, "\nYour board (your ships):")
	renderBoard(w, s.BotAttack(), s.PlayerShips())

	fmt.Fprintln(w, "\nBot's board (your attacks):")
	renderBoard(w, s.PlayerAttack(), nil)
}

// renderBoard prints one grid. attack is what has been shot at it; ships,
// when non-nil, reveals unhit ship cells as 'S' (own board only).
func renderBoard(w io.Writer, attack *game.AttackBoard, ships *game.ShipBoard) {
	header := make([]string, game.BoardSize)
	for i := range header {
		header[i] = string(rune('A' + i))
	}
	fmt.Fprintf(w, "   %s\n", strings.Join(header, " "))

	for r := 0; r < game.BoardSize; r++ {
		cells := make([]string, game.BoardSize)
		for c := 0; c < game.BoardSize; c++ {
			coord := game.Coord{Row: r, Col: c}
			state := attack.Cell(coord)
			if state == game.CellEmpty && ships != nil && ships.HasShip(coord) {
				cells[c] = "S"
			} else {
				cells[c] = state.String()
			}
		}
		fmt.Fprintf(w, "%2d %s\n", r+1, strings.Join(cells, " "))
	}
}
