// Package sqlite provides a SQLite-backed starboard store, so node
// calibrations, planet ownership, and faction balances survive restarts.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peltigera/starboard"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS planets (
	id           TEXT PRIMARY KEY,
	owner        TEXT NOT NULL DEFAULT '',
	image_number INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS nodes (
	planet_id TEXT NOT NULL,
	idx       INTEGER NOT NULL,
	x         REAL NOT NULL,
	y         REAL NOT NULL,
	active    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (planet_id, idx)
);
CREATE TABLE IF NOT EXISTS factions (
	id      TEXT PRIMARY KEY,
	credits INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS session (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store persists starboard state in SQLite. It satisfies starboard.Store:
// every write runs in its own implicit or explicit transaction, so mutations
// are atomic from the controller's view.
//
// The starboard.Store contract has no error returns; statement failures are
// recorded and readable via Err, and logged to stderr.
type Store struct {
	sqlDB    *sql.DB
	notifier func(string)
	lastErr  error
}

// Open opens a SQLite store, creating the schema when absent.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SetNotifier installs the sink Notify forwards to. Without one, notices are
// dropped.
func (s *Store) SetNotifier(fn func(message string)) {
	s.notifier = fn
}

// Err returns the most recent statement failure, or nil.
func (s *Store) Err() error {
	return s.lastErr
}

func (s *Store) fail(op string, err error) {
	s.lastErr = fmt.Errorf("%s: %w", op, err)
	_, _ = fmt.Fprintf(os.Stderr, "[starboard/sqlite] %v\n", s.lastErr)
}

// NodeSet returns the planet's node set, empty for unknown planets.
func (s *Store) NodeSet(planetID string) starboard.NodeSet {
	rows, err := s.sqlDB.Query(
		`SELECT x, y, active FROM nodes WHERE planet_id = ? ORDER BY idx`, planetID)
	if err != nil {
		s.fail("query nodes", err)
		return starboard.NodeSet{}
	}
	defer rows.Close()

	var set starboard.NodeSet
	for rows.Next() {
		var p starboard.NodePoint
		var active bool
		if err := rows.Scan(&p.X, &p.Y, &active); err != nil {
			s.fail("scan node", err)
			return starboard.NodeSet{}
		}
		set.Points = append(set.Points, p)
		set.Active = append(set.Active, active)
	}
	if err := rows.Err(); err != nil {
		s.fail("iterate nodes", err)
		return starboard.NodeSet{}
	}
	return set
}

// SetNodeSet replaces both sequences for the planet in one transaction.
func (s *Store) SetNodeSet(planetID string, set starboard.NodeSet) {
	tx, err := s.sqlDB.Begin()
	if err != nil {
		s.fail("begin set nodes", err)
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO planets (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, planetID); err != nil {
		s.fail("ensure planet", err)
		return
	}
	if _, err := tx.Exec(`DELETE FROM nodes WHERE planet_id = ?`, planetID); err != nil {
		s.fail("clear nodes", err)
		return
	}
	for i, p := range set.Points {
		if _, err := tx.Exec(
			`INSERT INTO nodes (planet_id, idx, x, y, active) VALUES (?, ?, ?, ?, ?)`,
			planetID, i, p.X, p.Y, set.Active[i]); err != nil {
			s.fail("insert node", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		s.fail("commit set nodes", err)
	}
}

// Owner returns the planet's owning faction.
func (s *Store) Owner(planetID string) starboard.Faction {
	var owner string
	err := s.sqlDB.QueryRow(
		`SELECT owner FROM planets WHERE id = ?`, planetID).Scan(&owner)
	if err == sql.ErrNoRows {
		return starboard.FactionNone
	}
	if err != nil {
		s.fail("query owner", err)
		return starboard.FactionNone
	}
	return starboard.Faction(owner)
}

// SetOwner sets the planet's owning faction.
func (s *Store) SetOwner(planetID string, owner starboard.Faction) {
	if _, err := s.sqlDB.Exec(
		`INSERT INTO planets (id, owner) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET owner = excluded.owner`,
		planetID, string(owner)); err != nil {
		s.fail("set owner", err)
	}
}

// ImageNumber returns the planet's reference image number.
func (s *Store) ImageNumber(planetID string) int {
	var number int
	err := s.sqlDB.QueryRow(
		`SELECT image_number FROM planets WHERE id = ?`, planetID).Scan(&number)
	if err == sql.ErrNoRows {
		return 0
	}
	if err != nil {
		s.fail("query image number", err)
		return 0
	}
	return number
}

// SetImageNumber sets the planet's reference image number.
func (s *Store) SetImageNumber(planetID string, number int) {
	if _, err := s.sqlDB.Exec(
		`INSERT INTO planets (id, image_number) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET image_number = excluded.image_number`,
		planetID, number); err != nil {
		s.fail("set image number", err)
	}
}

// Credits returns a faction's balance and whether the ledger knows it.
func (s *Store) Credits(f starboard.Faction) (int, bool) {
	var balance int
	err := s.sqlDB.QueryRow(
		`SELECT credits FROM factions WHERE id = ?`, string(f)).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, false
	}
	if err != nil {
		s.fail("query credits", err)
		return 0, false
	}
	return balance, true
}

// SetCredits registers a faction with the given balance.
func (s *Store) SetCredits(f starboard.Faction, balance int) {
	if f == starboard.FactionNone || f == starboard.FactionDestroyed {
		return
	}
	if balance < 0 {
		balance = 0
	}
	if _, err := s.sqlDB.Exec(
		`INSERT INTO factions (id, credits) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET credits = excluded.credits`,
		string(f), balance); err != nil {
		s.fail("set credits", err)
	}
}

// AddCredits adjusts a known faction's balance by delta, clamping at zero.
func (s *Store) AddCredits(f starboard.Faction, delta int) {
	if _, err := s.sqlDB.Exec(
		`UPDATE factions SET credits = MAX(0, credits + ?) WHERE id = ?`,
		delta, string(f)); err != nil {
		s.fail("add credits", err)
	}
}

// CurrentFaction returns the session's active faction.
func (s *Store) CurrentFaction() starboard.Faction {
	var value string
	err := s.sqlDB.QueryRow(
		`SELECT value FROM session WHERE key = 'current_faction'`).Scan(&value)
	if err == sql.ErrNoRows {
		return starboard.FactionNone
	}
	if err != nil {
		s.fail("query current faction", err)
		return starboard.FactionNone
	}
	return starboard.Faction(value)
}

// SetCurrentFaction sets the session's active faction.
func (s *Store) SetCurrentFaction(f starboard.Faction) {
	if _, err := s.sqlDB.Exec(
		`INSERT INTO session (key, value) VALUES ('current_faction', ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		string(f)); err != nil {
		s.fail("set current faction", err)
	}
}

// Notify forwards the notice to the installed notifier.
func (s *Store) Notify(message string) {
	if s.notifier != nil {
		s.notifier(message)
	}
}
