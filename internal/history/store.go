// Package history persists scan results to a local SQLite database. It is an
// opt-in secondary sink; the scanner's in-memory cache remains the primary
// session view.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hsylva/sozin/pkg/models"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_sessions (
	id          TEXT PRIMARY KEY,
	interface   TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	total       INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scan_networks (
	session_id      TEXT NOT NULL REFERENCES scan_sessions(id) ON DELETE CASCADE,
	bssid           TEXT NOT NULL,
	ssid            TEXT NOT NULL,
	channel         INTEGER NOT NULL,
	frequency       INTEGER NOT NULL,
	signal_dbm      INTEGER NOT NULL,
	security        TEXT NOT NULL,
	mode            TEXT NOT NULL,
	last_seen       TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, bssid)
);
CREATE INDEX IF NOT EXISTS idx_scan_networks_bssid ON scan_networks(bssid);
`

// Session identifies one saved scan.
type Session struct {
	ID        string    `json:"id"`
	Interface string    `json:"interface"`
	StartedAt time.Time `json:"started_at"`
	Total     int       `json:"total"`
}

// Store is a SQLite-backed scan history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path and applies
// recommended pragmas for WAL mode and foreign keys.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScan records one scan result set as a new session and returns its ID.
func (s *Store) SaveScan(ctx context.Context, iface string, networks []models.WifiNetworkRecord) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scan_sessions (id, interface, started_at, total) VALUES (?, ?, ?, ?)`,
		id, iface, time.Now().UTC(), len(networks))
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	for _, n := range networks {
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO scan_networks (
			session_id, bssid, ssid, channel, frequency,
			signal_dbm, security, mode, last_seen
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, n.BSSID, n.SSID, n.Channel, n.Frequency,
			n.SignalStrength, string(n.Security), n.Mode, n.LastSeen.UTC())
		if err != nil {
			return "", fmt.Errorf("insert network %s: %w", n.BSSID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit scan session: %w", err)
	}
	return id, nil
}

// ListSessions returns saved sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, interface, started_at, total
		FROM scan_sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Interface, &sess.StartedAt, &sess.Total); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionNetworks returns the networks recorded in one session, sorted
// strongest-signal-first like live scan results.
func (s *Store) SessionNetworks(ctx context.Context, sessionID string) ([]models.WifiNetworkRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		bssid, ssid, channel, frequency, signal_dbm, security, mode, last_seen
		FROM scan_networks WHERE session_id = ?
		ORDER BY signal_dbm DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session networks: %w", err)
	}
	defer rows.Close()

	var networks []models.WifiNetworkRecord
	for rows.Next() {
		var n models.WifiNetworkRecord
		var security string
		if err := rows.Scan(&n.BSSID, &n.SSID, &n.Channel, &n.Frequency,
			&n.SignalStrength, &security, &n.Mode, &n.LastSeen); err != nil {
			return nil, fmt.Errorf("scan network row: %w", err)
		}
		n.Security = models.SecurityType(security)
		networks = append(networks, n)
	}
	return networks, rows.Err()
}
