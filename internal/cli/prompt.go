package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"seabattle/internal/codec"
	"seabattle/internal/game"
)

const (
	// maxLineAttempts bounds re-prompts for a single input line.
	maxLineAttempts = 50
	// maxFleetAttempts bounds full fleet re-entry after a validation
	// failure.
	maxFleetAttempts = 10
)

// ErrInputExhausted is returned when the input stream ends or the retry
// budget runs out.
var ErrInputExhausted = errors.New("input exhausted")

// Prompter reads player input line by line and re-prompts on bad input with
// a bounded retry budget instead of recursing.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter wraps an input stream and an output writer.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputExhausted
	}
	return p.in.Text(), nil
}

// Fleet walks the player through entering one ship per required size,
// validates the complete fleet, and re-runs the whole entry on a validation
// failure.
func (p *Prompter) Fleet() (game.Fleet, error) {
	fmt.Fprintf(p.out, `
Place your ships on the %dx%d grid (A1-J%d):
  1 ship of size 4, 2 of size 3, 3 of size 2, 4 of size 1.
Ships cannot touch each other, even diagonally.
Enter a ship as "A1 A2 A3", "A1,A2,A3" or "A1-A3"; size-1 ships as "B4".

`, game.BoardSize, game.BoardSize, game.BoardSize)

	for attempt := 0; attempt < maxFleetAttempts; attempt++ {
		fleet, err := p.enterFleet()
		if err != nil {
			return nil, err
		}
		if err := fleet.Validate(); err != nil {
			fmt.Fprintf(p.out, "Invalid fleet: %v. Enter the ship positions again.\n", err)
			continue
		}
		return fleet, nil
	}
	return nil, ErrInputExhausted
}

func (p *Prompter) enterFleet() (game.Fleet, error) {
	fleet := make(game.Fleet, 0, len(game.ShipSizes))
	for i, size := range game.ShipSizes {
		ship, err := p.ship(size, i+1)
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, ship)
	}
	return fleet, nil
}

func (p *Prompter) ship(size, index int) (game.Ship, error) {
	prompt := fmt.Sprintf("Enter coordinates for ship of size %d (ship %d): ", size, index)
	for attempt := 0; attempt < maxLineAttempts; attempt++ {
		line, err := p.readLine(prompt)
		if err != nil {
			return nil, err
		}
		ship, err := codec.ParseShip(line)
		if err != nil {
			fmt.Fprintf(p.out, "Error: %v. Please try again.\n", err)
			continue
		}
		if len(ship) != size {
			fmt.Fprintf(p.out, "Error: expected %d coordinates, got %d. Please try again.\n", size, len(ship))
			continue
		}
		return ship, nil
	}
	return nil, ErrInputExhausted
}

// NextMove prompts for an attack coordinate that is in bounds and not yet
// resolved on the given attack board.
func (p *Prompter) NextMove(attack *game.AttackBoard) (game.Coord, error) {
	for attempt := 0; attempt < maxLineAttempts; attempt++ {
		line, err := p.readLine("Enter your move (e.g. A1, B2): ")
		if err != nil {
			return game.Coord{}, err
		}
		c, err := codec.ParseCoord(line)
		if err != nil {
			fmt.Fprintf(p.out, "%v. Column A-%c, row 1-%d.\n", err, 'A'+game.BoardSize-1, game.BoardSize)
			continue
		}
		if attack.Cell(c) != game.CellEmpty {
			fmt.Fprintln(p.out, "You've already attacked this spot. Try again.")
			continue
		}
		return c, nil
	}
	return game.Coord{}, ErrInputExhausted
}
