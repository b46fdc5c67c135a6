package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Match is one finished game as stored in the archive.
type Match struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Winner      string
	Turns       int
	PlayerShots int
	BotShots    int
	PlayerBoard string // player's final attack board, serialized
	BotBoard    string // bot's final attack board, serialized
	RootHex     string // bot board commitment root, empty when zk disabled
}

// Archive records finished matches in a sqlite database.
type Archive struct {
	db *sql.DB
}

const createMatchesTable = `
CREATE TABLE IF NOT EXISTS matches (
	id TEXT PRIMARY KEY,
	started_at DATETIME,
	ended_at DATETIME,
	winner TEXT,
	turns INTEGER,
	player_shots INTEGER,
	bot_shots INTEGER,
	player_board TEXT,
	bot_board TEXT,
	root_hex TEXT
);
`

// OpenArchive opens (creating if needed) the match archive at dbPath.
func OpenArchive(dbPath string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec(createMatchesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// SaveMatch inserts one finished match.
func (a *Archive) SaveMatch(m Match) error {
	const insert = `
	INSERT INTO matches (id, started_at, ended_at, winner, turns, player_shots, bot_shots, player_board, bot_board, root_hex)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := a.db.Exec(insert,
		m.ID, m.StartedAt, m.EndedAt, m.Winner, m.Turns,
		m.PlayerShots, m.BotShots, m.PlayerBoard, m.BotBoard, m.RootHex,
	)
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

// Matches returns archived matches, most recent first.
func (a *Archive) Matches() ([]Match, error) {
	rows, err := a.db.Query(`
	SELECT id, started_at, ended_at, winner, turns, player_shots, bot_shots, player_board, bot_board, root_hex
	FROM matches ORDER BY ended_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.StartedAt, &m.EndedAt, &m.Winner, &m.Turns,
			&m.PlayerShots, &m.BotShots, &m.PlayerBoard, &m.BotBoard, &m.RootHex); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
