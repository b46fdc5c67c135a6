// Package storage persists match data: the append-only CSV turn log, fleet
// layout files, and the sqlite archive of finished matches.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"seabattle/internal/codec"
	"seabattle/internal/game"
)

// MoveRecord is one resolved attack for the turn log.
type MoveRecord struct {
	Coord  game.Coord
	Result game.Result
}

var turnLogHeader = []string{
	"turn_number",
	"player_move_coord",
	"player_move_result",
	"bot_move_coord",
	"bot_move_result",
	"player_board_serialized",
	"bot_board_serialized",
}

// TurnLog appends resolved turns to a CSV file. Losing a partial write is
// acceptable; the log is observational, not game state.
type TurnLog struct {
	path string
}

// NewTurnLog creates a turn log writing to path, creating parent
// directories as needed.
func NewTurnLog(path string) (*TurnLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create turn log dir: %w", err)
	}
	return &TurnLog{path: path}, nil
}

// Append writes one row per move index of the turn's extra-shot sequences,
// pairing player and bot moves positionally and leaving blanks where one
// side shot fewer times. The header goes in when the file is empty.
// Board snapshots are the post-turn attack boards, row-major '.'/'H'/'M'.
func (l *TurnLog) Append(turn int, playerMoves, botMoves []MoveRecord, playerAttack, botAttack *game.AttackBoard) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open turn log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(turnLogHeader); err != nil {
			return err
		}
	}

	playerBoard := codec.SerializeBoard(playerAttack)
	botBoard := codec.SerializeBoard(botAttack)

	rows := len(playerMoves)
	if len(botMoves) > rows {
		rows = len(botMoves)
	}
	for i := 0; i < rows; i++ {
		record := []string{strconv.Itoa(turn), "", "", "", "", playerBoard, botBoard}
		if i < len(playerMoves) {
			record[1] = codec.FormatCoord(playerMoves[i].Coord)
			record[2] = playerMoves[i].Result.String()
		}
		if i < len(botMoves) {
			record[3] = codec.FormatCoord(botMoves[i].Coord)
			record[4] = botMoves[i].Result.String()
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
