// Package storage provides SQLite-based persistence for race results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// RaceRecord is one finished race as stored.
type RaceRecord struct {
	ID        string // KSUID, generated on save when empty
	Track     string
	Mode      string
	Driver    string
	Position  int
	FieldSize int
	Prize     int
	TotalTime float64
	BestLap   float64
	Weather   string
	Laps      int
	Seed      int64
	Winner    string
	LapTimes  []float64
	CreatedAt time.Time
}

// RecordFromResult builds a record from a simulation result.
func RecordFromResult(track, mode, driver string, cfg sim.RaceConfig, seed int64, res sim.RaceResult) RaceRecord {
	laps := make([]float64, len(res.LapRecords))
	for i, l := range res.LapRecords {
		laps[i] = l.Time
	}
	return RaceRecord{
		Track:     track,
		Mode:      mode,
		Driver:    driver,
		Position:  res.FinalPosition,
		FieldSize: len(res.Standings),
		Prize:     res.PrizeMoney,
		TotalTime: res.TotalTime,
		BestLap:   res.BestLap,
		Weather:   string(cfg.Weather.Condition),
		Laps:      cfg.LapCount,
		Seed:      seed,
		Winner:    res.WinnerID,
		LapTimes:  laps,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS race_results (
			id TEXT PRIMARY KEY,
			track TEXT NOT NULL,
			mode TEXT NOT NULL,
			driver TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			field_size INTEGER NOT NULL DEFAULT 0,
			prize INTEGER NOT NULL DEFAULT 0,
			total_time REAL NOT NULL,
			best_lap REAL NOT NULL DEFAULT 0,
			weather TEXT NOT NULL DEFAULT '',
			laps INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_race_results_track ON race_results(track);
		CREATE INDEX IF NOT EXISTS idx_race_results_top ON race_results(track, position, total_time);

		CREATE TABLE IF NOT EXISTS lap_records (
			race_id TEXT NOT NULL,
			lap INTEGER NOT NULL,
			time REAL NOT NULL,
			PRIMARY KEY (race_id, lap)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRaceResult stores a race and its lap times in one transaction.
// Returns the race ID.
func (s *Store) SaveRaceResult(rec RaceRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = ksuid.New().String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO race_results
		 (id, track, mode, driver, position, field_size, prize, total_time, best_lap, weather, laps, seed, winner)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Track, rec.Mode, rec.Driver, rec.Position, rec.FieldSize, rec.Prize,
		rec.TotalTime, rec.BestLap, rec.Weather, rec.Laps, rec.Seed, rec.Winner,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save race result: %w", err)
	}

	for i, lt := range rec.LapTimes {
		if _, err := tx.Exec(
			"INSERT INTO lap_records (race_id, lap, time) VALUES (?, ?, ?)",
			rec.ID, i+1, lt,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save lap %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit race result: %w", err)
	}
	return rec.ID, nil
}

const resultColumns = `id, track, mode, driver, position, field_size, prize, total_time,
	best_lap, weather, laps, seed, winner, created_at`

// TopResults retrieves the best N results on a track: best position first,
// then fastest total time.
func (s *Store) TopResults(track string, limit int) ([]RaceRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM race_results
		 WHERE track = ?
		 ORDER BY position ASC, total_time ASC
		 LIMIT ?`,
		track, limit,
	)
}

// RecentResults retrieves the most recent results across every track.
func (s *Store) RecentResults(limit int) ([]RaceRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM race_results
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// RaceByID retrieves a single race with its lap times, or nil if unknown.
func (s *Store) RaceByID(id string) (*RaceRecord, error) {
	recs, err := s.queryResults(`SELECT `+resultColumns+` FROM race_results WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	rec := recs[0]
	rec.LapTimes, err = s.LapTimes(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) queryResults(query string, args ...any) ([]RaceRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var out []RaceRecord
	for rows.Next() {
		var r RaceRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Track, &r.Mode, &r.Driver, &r.Position, &r.FieldSize, &r.Prize,
			&r.TotalTime, &r.BestLap, &r.Weather, &r.Laps, &r.Seed, &r.Winner, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LapTimes returns the lap times of one race in lap order.
func (s *Store) LapTimes(raceID string) ([]float64, error) {
	rows, err := s.db.Query("SELECT time FROM lap_records WHERE race_id = ? ORDER BY lap", raceID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query laps: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var lt float64
		if err := rows.Scan(&lt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan lap: %w", err)
		}
		out = append(out, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestLap returns the fastest lap ever recorded on a track.
// Returns 0 if the track has no laps.
func (s *Store) BestLap(track string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT MIN(l.time)
		 FROM lap_records l JOIN race_results r ON r.id = l.race_id
		 WHERE r.track = ?`,
		track,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best lap: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}

// ClearTrack deletes every result and lap recorded on a track.
func (s *Store) ClearTrack(track string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		"DELETE FROM lap_records WHERE race_id IN (SELECT id FROM race_results WHERE track = ?)",
		track,
	); err != nil {
		return fmt.Errorf("storage: cannot clear laps: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM race_results WHERE track = ?", track); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// TrackStats contains aggregated statistics for a track.
type TrackStats struct {
	Track        string
	Races        int
	Wins         int
	Podiums      int
	BestPosition int
	TotalPrize   int64
	BestLap      float64
	LastRaced    time.Time
}

// GetTrackStats retrieves aggregated statistics for a specific track.
func (s *Store) GetTrackStats(track string) (*TrackStats, error) {
	stats := &TrackStats{Track: track}

	var lastRaced any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN position = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN position <= 3 THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(position), 0),
		        COALESCE(SUM(prize), 0),
		        MAX(created_at)
		 FROM race_results WHERE track = ?`,
		track,
	).Scan(&stats.Races, &stats.Wins, &stats.Podiums, &stats.BestPosition, &stats.TotalPrize, &lastRaced)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get track stats: %w", err)
	}
	stats.LastRaced = parseTime(lastRaced)

	stats.BestLap, err = s.BestLap(track)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetAllTrackStats retrieves statistics for every track that has been raced.
func (s *Store) GetAllTrackStats() (map[string]*TrackStats, error) {
	rows, err := s.db.Query("SELECT DISTINCT track FROM race_results")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list tracks: %w", err)
	}
	var tracks []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	out := make(map[string]*TrackStats, len(tracks))
	for _, t := range tracks {
		st, err := s.GetTrackStats(t)
		if err != nil {
			return nil, err
		}
		out[t] = st
	}
	return out, nil
}

// parseTime converts a SQLite DATETIME, which the driver may return as
// time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ErrNoStore is returned by callers that need a store but run without one.
var ErrNoStore = errors.New("storage: no results database")
