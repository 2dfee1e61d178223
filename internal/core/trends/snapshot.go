package trends

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshot persists the trend cache as [key, record] rows plus a
// single scrape timestamp. Rows and timestamp are written in one
// transaction and read together; one without the other counts as no
// valid snapshot.
type SQLiteSnapshot struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenSnapshot(path string) (*SQLiteSnapshot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS trend_records (
		key    TEXT PRIMARY KEY,
		record TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshot_meta (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		scraped_at TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}

	return &SQLiteSnapshot{db: db}, nil
}

// Save replaces the whole snapshot in one transaction.
func (s *SQLiteSnapshot) Save(records map[string]Record, scrapedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trend_records`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO trend_records (key, record) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for key, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", key, err)
		}
		if _, err := stmt.Exec(key, string(data)); err != nil {
			return fmt.Errorf("insert record %s: %w", key, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO snapshot_meta (id, scraped_at) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET scraped_at = excluded.scraped_at`,
		scrapedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("write snapshot meta: %w", err)
	}

	return tx.Commit()
}

// Load reads the persisted snapshot. A missing timestamp or an empty record
// set yields (empty, zero, nil): no snapshot, not an error.
func (s *SQLiteSnapshot) Load() (map[string]Record, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rawTS string
	err := s.db.QueryRow(`SELECT scraped_at FROM snapshot_meta WHERE id = 1`).Scan(&rawTS)
	if err == sql.ErrNoRows {
		return map[string]Record{}, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot meta: %w", err)
	}
	scrapedAt, err := time.Parse(time.RFC3339, rawTS)
	if err != nil {
		return map[string]Record{}, time.Time{}, nil
	}

	rows, err := s.db.Query(`SELECT key, record FROM trend_records`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot rows: %w", err)
	}
	defer rows.Close()

	records := make(map[string]Record)
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan snapshot row: %w", err)
		}
		var rec Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			telemetry.Warnf("trends: skipping corrupt snapshot row %s: %v", key, err)
			continue
		}
		records[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	if len(records) == 0 {
		// timestamp without rows is not a usable snapshot
		return map[string]Record{}, time.Time{}, nil
	}
	return records, scrapedAt, nil
}

func (s *SQLiteSnapshot) Close() error {
	return s.db.Close()
}
