package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/isle-city/internal/game"
)

// defaultSlot is the save slot used by a single-player session.
const defaultSlot = "default"

// SQLite persists snapshots in a local SQLite database: one row per save
// slot plus a key/value meta table.
type SQLite struct {
	conn *sqlx.DB
	slot string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &SQLite{conn: conn, slot: defaultSlot}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		payload TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Save replaces the slot's snapshot.
func (db *SQLite) Save(blob *game.SaveBlob) error {
	payload, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO saves (slot, version, payload, saved_at) VALUES (?, ?, ?, ?)`,
		db.slot, blob.Version, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the slot's snapshot. found is false for a fresh database.
func (db *SQLite) Load() (*game.SaveBlob, bool, error) {
	var payload string
	err := db.conn.Get(&payload, "SELECT payload FROM saves WHERE slot = ?", db.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	var blob game.SaveBlob
	if err := json.Unmarshal([]byte(payload), &blob); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &blob, true, nil
}

// SetMeta stores a key/value pair in session metadata.
func (db *SQLite) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. found is false for an absent key.
func (db *SQLite) GetMeta(key string) (string, bool, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
