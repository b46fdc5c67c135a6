// Package codec implements the shared text encodings: "A1".."J10"
// coordinates (column letter + 1-based row), comma lists of cells, range
// notation for straight runs, and the flattened board string used by the
// turn log.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"seabattle/internal/game"
)

// FormatCoord renders c as a letter-number pair, e.g. (0,0) -> "A1".
func FormatCoord(c game.Coord) string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// ParseCoord parses "A1".."J10", case-insensitive on the letter.
func ParseCoord(s string) (game.Coord, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return game.Coord{}, fmt.Errorf("malformed coordinate %q", s)
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return game.Coord{}, fmt.Errorf("malformed coordinate %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return game.Coord{}, fmt.Errorf("malformed coordinate %q", s)
	}
	c := game.Coord{Row: row - 1, Col: int(letter - 'A')}
	if !game.InBounds(c) {
		return game.Coord{}, fmt.Errorf("coordinate %q out of bounds", s)
	}
	return c, nil
}

// FormatShip renders a ship as a comma list, e.g. "C5,D5,E5".
func FormatShip(ship game.Ship) string {
	parts := make([]string, len(ship))
	for i, c := range ship {
		parts[i] = FormatCoord(c)
	}
	return strings.Join(parts, ",")
}

// ParseShip parses a ship from any of the accepted forms: a single cell
// ("B4"), a comma or whitespace separated list ("A1,A2" / "A1 A2"), or a
// range over a straight run ("B4-B6", either direction).
func ParseShip(s string) (game.Ship, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty ship")
	}
	if strings.Contains(s, "-") {
		return parseRange(s)
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	ship := make(game.Ship, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCoord(f)
		if err != nil {
			return nil, err
		}
		ship = append(ship, c)
	}
	return ship, nil
}

func parseRange(s string) (game.Ship, error) {
	parts := strings.SplitN(s, "-", 2)
	start, err := ParseCoord(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := ParseCoord(parts[1])
	if err != nil {
		return nil, err
	}
	switch {
	case start.Row == end.Row:
		step := 1
		if end.Col < start.Col {
			step = -1
		}
		var ship game.Ship
		for col := start.Col; ; col += step {
			ship = append(ship, game.Coord{Row: start.Row, Col: col})
			if col == end.Col {
				return ship, nil
			}
		}
	case start.Col == end.Col:
		step := 1
		if end.Row < start.Row {
			step = -1
		}
		var ship game.Ship
		for row := start.Row; ; row += step {
			ship = append(ship, game.Coord{Row: row, Col: start.Col})
			if row == end.Row {
				return ship, nil
			}
		}
	default:
		return nil, fmt.Errorf("range %q is not horizontal or vertical", s)
	}
}

// SerializeBoard flattens an attack board row-major, one character per cell:
// '.' empty, 'H' hit, 'M' miss.
func SerializeBoard(b *game.AttackBoard) string {
	var sb strings.Builder
	sb.Grow(game.BoardSize * game.BoardSize)
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			sb.WriteString(b[r][c].String())
		}
	}
	return sb.String()
}
