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

// SaveFleet writes a fleet layout as CSV rows of ship_id, size and the
// comma-joined coordinate list. Overwrites any previous layout.
func SaveFleet(path string, fleet game.Fleet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fleet dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fleet file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ship_id", "size", "coordinates"}); err != nil {
		return err
	}
	for i, ship := range fleet {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(len(ship)),
			codec.FormatShip(ship),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadFleet reads a fleet layout back from its CSV file. The result is not
// validated; callers run Fleet.Validate themselves.
func LoadFleet(path string) (game.Fleet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read fleet file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("fleet file %s is empty", path)
	}

	fleet := make(game.Fleet, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		if len(rec) < 3 {
			return nil, fmt.Errorf("malformed fleet row %v", rec)
		}
		ship, err := codec.ParseShip(rec[2])
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, ship)
	}
	return fleet, nil
}
