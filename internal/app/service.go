// Package app orchestrates a match: setup, the turn loop with extra-shot
// chains, optional shot proofs, and persistence.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"seabattle/internal/bot"
	"seabattle/internal/cli"
	"seabattle/internal/codec"
	"seabattle/internal/game"
	"seabattle/internal/storage"
	"seabattle/internal/zk"
)

// MoveSource supplies the player's next attack coordinate. The CLI prompter
// implements it; tests script it.
type MoveSource interface {
	NextMove(attack *game.AttackBoard) (game.Coord, error)
}

// Options configures a session. TurnLog, Archive and Commitment are all
// optional; a nil value disables that feature.
type Options struct {
	Log        zerolog.Logger
	Moves      MoveSource
	Out        io.Writer
	TurnLog    *storage.TurnLog
	Archive    *storage.Archive
	Commitment *zk.Commitment
	KeysDir    string
	BotDelay   time.Duration
}

// Session drives one match from setup to a winner.
type Session struct {
	log     zerolog.Logger
	state   *game.State
	tracker *bot.Tracker
	moves   MoveSource
	out     io.Writer

	turnLog    *storage.TurnLog
	archive    *storage.Archive
	commitment *zk.Commitment
	keysDir    string

	botDelay  time.Duration
	startedAt time.Time

	playerShots int
	botShots    int
}

// NewSession assembles a session over an already-validated game state.
func NewSession(state *game.State, tracker *bot.Tracker, opts Options) *Session {
	return &Session{
		log:        opts.Log.With().Str("component", "session").Logger(),
		state:      state,
		tracker:    tracker,
		moves:      opts.Moves,
		out:        opts.Out,
		turnLog:    opts.TurnLog,
		archive:    opts.Archive,
		commitment: opts.Commitment,
		keysDir:    opts.KeysDir,
		botDelay:   opts.BotDelay,
		startedAt:  time.Now(),
	}
}

// ErrBoardExhausted signals the fatal accounting contradiction of a full
// board with no winner. Unreachable with validated fleets.
var ErrBoardExhausted = errors.New("no empty cells remain but no winner detected")

// Run plays the match to completion and returns the winning side.
func (s *Session) Run() (game.Side, error) {
	for {
		cli.RenderBoards(s.out, s.state)

		var playerMoves, botMoves []storage.MoveRecord
		var winner game.Side
		var done bool
		var err error

		if s.state.Turn() == game.SidePlayer {
			playerMoves, winner, done, err = s.playerSequence()
		} else {
			botMoves, winner, done, err = s.botSequence()
		}
		if err != nil {
			return 0, err
		}

		if logErr := s.logTurn(playerMoves, botMoves); logErr != nil {
			s.log.Warn().Err(logErr).Msg("turn log write failed")
		}
		if done {
			s.announce(winner)
			if archErr := s.archiveMatch(winner); archErr != nil {
				s.log.Warn().Err(archErr).Msg("archive write failed")
			}
			return winner, nil
		}
	}
}

// playerSequence runs the player's extra-shot chain until a miss, input
// failure, or a win.
func (s *Session) playerSequence() ([]storage.MoveRecord, game.Side, bool, error) {
	fmt.Fprintln(s.out, "\n=== Your turn ===")
	var moves []storage.MoveRecord

	for s.state.Turn() == game.SidePlayer {
		if !s.state.PlayerAttack().HasEmpty() {
			return moves, 0, false, ErrBoardExhausted
		}
		coord, err := s.moves.NextMove(s.state.PlayerAttack())
		if err != nil {
			return moves, 0, false, err
		}
		res := s.state.ApplyPlayerMove(coord)
		if res == game.ResultInvalid {
			// The prompter pre-checks; hitting this means the source is
			// misbehaving, so re-request rather than advance the turn.
			s.log.Warn().Str("coord", codec.FormatCoord(coord)).Msg("invalid player move")
			continue
		}
		s.playerShots++
		moves = append(moves, storage.MoveRecord{Coord: coord, Result: res})
		fmt.Fprintf(s.out, "Your move %s: %s\n", codec.FormatCoord(coord), res)

		s.proveShot(coord, res)

		if winner, over := s.state.Winner(); over {
			return moves, winner, true, nil
		}
		if !s.state.ExtraShot(game.SidePlayer) {
			s.state.NextTurn()
			break
		}
		fmt.Fprintln(s.out, "You hit! You get another shot.")
	}
	return moves, 0, false, nil
}

// botSequence runs the bot's extra-shot chain until a miss or a win.
func (s *Session) botSequence() ([]storage.MoveRecord, game.Side, bool, error) {
	fmt.Fprintln(s.out, "\n=== Bot's turn ===")
	var moves []storage.MoveRecord

	for s.state.Turn() == game.SideBot {
		if !s.state.BotAttack().HasEmpty() {
			return moves, 0, false, ErrBoardExhausted
		}
		coord := s.tracker.Next(s.state.BotAttack())
		res := s.state.ApplyBotMove(coord)
		if res == game.ResultInvalid {
			// The tracker never targets a resolved cell; this is a bug,
			// not a game event.
			return moves, 0, false, fmt.Errorf("targeting selected resolved cell %s", codec.FormatCoord(coord))
		}
		s.tracker.Observe(coord, res)
		s.botShots++
		moves = append(moves, storage.MoveRecord{Coord: coord, Result: res})
		fmt.Fprintf(s.out, "Bot's move %s: %s\n", codec.FormatCoord(coord), res)

		if winner, over := s.state.Winner(); over {
			return moves, winner, true, nil
		}
		if !s.state.ExtraShot(game.SideBot) {
			s.state.NextTurn()
			break
		}
		fmt.Fprintln(s.out, "Bot hit! Bot gets another shot.")
		if s.botDelay > 0 {
			time.Sleep(s.botDelay)
		}
	}
	return moves, 0, false, nil
}

// proveShot emits and checks a proof that the bot reported the player's shot
// honestly. Cosmetic to gameplay: a failure is logged, never fatal.
func (s *Session) proveShot(coord game.Coord, res game.Result) {
	if s.commitment == nil {
		return
	}
	sp, err := zk.ProveShot(s.keysDir, s.commitment, coord)
	if err != nil {
		s.log.Warn().Err(err).Msg("shot proof failed")
		return
	}
	wantHit := res == game.ResultHit || res == game.ResultSink
	if (sp.Public.Hit == 1) != wantHit {
		s.log.Error().Str("coord", codec.FormatCoord(coord)).Msg("shot proof contradicts reported result")
		return
	}
	root, err := s.commitment.Root()
	if err != nil {
		s.log.Warn().Err(err).Msg("bad commitment root")
		return
	}
	ok, err := zk.VerifyShot(zk.VKPath(s.keysDir), sp, root)
	if err != nil || !ok {
		s.log.Error().Err(err).Str("coord", codec.FormatCoord(coord)).Msg("shot proof did not verify")
		return
	}
	s.log.Debug().Str("coord", codec.FormatCoord(coord)).Msg("shot proof verified")
}

func (s *Session) logTurn(playerMoves, botMoves []storage.MoveRecord) error {
	if s.turnLog == nil {
		return nil
	}
	return s.turnLog.Append(s.state.TurnNumber(), playerMoves, botMoves,
		s.state.PlayerAttack(), s.state.BotAttack())
}

func (s *Session) announce(winner game.Side) {
	fmt.Fprintln(s.out)
	if winner == game.SidePlayer {
		fmt.Fprintln(s.out, "Congratulations! You sank all the bot's ships. You win!")
	} else {
		fmt.Fprintln(s.out, "Game over. The bot sank all your ships. You lose.")
	}
}

func (s *Session) archiveMatch(winner game.Side) error {
	if s.archive == nil {
		return nil
	}
	rootHex := ""
	if s.commitment != nil {
		rootHex = s.commitment.RootHex
	}
	return s.archive.SaveMatch(storage.Match{
		ID:          uuid.NewString(),
		StartedAt:   s.startedAt,
		EndedAt:     time.Now(),
		Winner:      winner.String(),
		Turns:       s.state.TurnNumber(),
		PlayerShots: s.playerShots,
		BotShots:    s.botShots,
		PlayerBoard: codec.SerializeBoard(s.state.PlayerAttack()),
		BotBoard:    codec.SerializeBoard(s.state.BotAttack()),
		RootHex:     rootHex,
	})
}
