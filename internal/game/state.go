package game

import "fmt"

// Side identifies one of the two actors.
type Side uint8

const (
	SidePlayer Side = iota
	SideBot
)

func (s Side) String() string {
	if s == SideBot {
		return "bot"
	}
	return "player"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideBot
	}
	return SidePlayer
}

// State owns everything mutable about a running match: both fleets, both
// ship-location boards, both attack boards, and the turn bookkeeping.
// Single-threaded by design; nothing here is safe for concurrent use.
type State struct {
	playerFleet Fleet
	botFleet    Fleet

	playerShips ShipBoard
	botShips    ShipBoard

	// playerAttack tracks the player's shots on the bot's grid, botAttack
	// the reverse.
	playerAttack AttackBoard
	botAttack    AttackBoard

	turn       Side
	turnNumber int

	playerExtraShot bool
	botExtraShot    bool
}

// NewState validates both fleets and builds the initial match state with the
// player to move. Fleets are re-validated here regardless of what the caller
// already checked.
func NewState(playerFleet, botFleet Fleet) (*State, error) {
	if err := playerFleet.Validate(); err != nil {
		return nil, fmt.Errorf("player fleet: %w", err)
	}
	if err := botFleet.Validate(); err != nil {
		return nil, fmt.Errorf("bot fleet: %w", err)
	}
	return &State{
		playerFleet: playerFleet,
		botFleet:    botFleet,
		playerShips: playerFleet.ShipBoard(),
		botShips:    botFleet.ShipBoard(),
		turn:        SidePlayer,
	}, nil
}

// Turn returns whose move it is.
func (s *State) Turn() Side { return s.turn }

// TurnNumber counts completed handoffs, starting at 0.
func (s *State) TurnNumber() int { return s.turnNumber }

// PlayerAttack exposes the player's attack board for rendering and targeting
// input checks. Read-only by convention.
func (s *State) PlayerAttack() *AttackBoard { return &s.playerAttack }

// BotAttack exposes the bot's attack board. The targeting AI works from this
// board alone; it never sees playerShips.
func (s *State) BotAttack() *AttackBoard { return &s.botAttack }

// PlayerShips exposes the player's own ship layout for rendering.
func (s *State) PlayerShips() *ShipBoard { return &s.playerShips }

// BotShips exposes the bot's ship layout to the commitment layer only.
func (s *State) BotShips() *ShipBoard { return &s.botShips }

// ApplyPlayerMove resolves a player attack against the bot's grid and
// updates the player's extra-shot entitlement.
func (s *State) ApplyPlayerMove(c Coord) Result {
	res := ApplyMove(&s.playerAttack, &s.botShips, s.botFleet, c)
	if res != ResultInvalid {
		s.playerExtraShot = res == ResultHit || res == ResultSink
	}
	return res
}

// ApplyBotMove resolves a bot attack against the player's grid and updates
// the bot's extra-shot entitlement.
func (s *State) ApplyBotMove(c Coord) Result {
	res := ApplyMove(&s.botAttack, &s.playerShips, s.playerFleet, c)
	if res != ResultInvalid {
		s.botExtraShot = res == ResultHit || res == ResultSink
	}
	return res
}

// ExtraShot reports whether side keeps the turn after its latest attack.
func (s *State) ExtraShot(side Side) bool {
	if side == SideBot {
		return s.botExtraShot
	}
	return s.playerExtraShot
}

// NextTurn hands the turn over. The counter only advances on an actual
// handoff: a side chaining extra shots stays on the same turn number.
func (s *State) NextTurn() {
	if s.playerExtraShot || s.botExtraShot {
		if s.playerExtraShot {
			s.turn = SidePlayer
		} else {
			s.turn = SideBot
		}
		return
	}
	s.turnNumber++
	s.turn = s.turn.Other()
}

// Winner reports the winning side, if the match is over. Checked after every
// attack, since an extra-shot chain can end the game mid-sequence.
func (s *State) Winner() (Side, bool) {
	if AllSunk(&s.playerAttack, s.botFleet) {
		return SidePlayer, true
	}
	if AllSunk(&s.botAttack, s.playerFleet) {
		return SideBot, true
	}
	return 0, false
}

// Fleet returns the fleet owned by side.
func (s *State) Fleet(side Side) Fleet {
	if side == SideBot {
		return s.botFleet
	}
	return s.playerFleet
}
