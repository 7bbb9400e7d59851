package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contexere/internal/domain"
	"contexere/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

var errNotOpen = errors.New("ledger is not open")

// Ledger implements ports.Ledger using SQLite
type Ledger struct {
	db     *sql.DB
	dbPath string
	logger *slog.Logger
}

// Ensure Ledger implements Ledger
var _ ports.Ledger = (*Ledger)(nil)

// NewLedger creates a new SQLite ledger. A nil logger uses slog.Default().
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{logger: logger}
}

// DatabasePath returns the ledger file inside dataDir. An empty dataDir
// means $XDG_DATA_HOME/contexere.
func DatabasePath(dataDir string) string {
	if dataDir == "" {
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, _ := os.UserHomeDir()
			dataHome = filepath.Join(home, ".local", "share")
		}
		dataDir = filepath.Join(dataHome, "contexere")
	}
	if strings.HasPrefix(dataDir, "~") {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, dataDir[1:])
	}
	return filepath.Join(dataDir, "ledger.db")
}

// Open initializes the ledger stored at dbPath
func (l *Ledger) Open(dbPath string) error {
	if dbPath == "" {
		dbPath = DatabasePath("")
	}
	l.dbPath = dbPath

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	l.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS identifiers (
			location TEXT NOT NULL,
			identifier TEXT NOT NULL,
			project TEXT NOT NULL,
			date TEXT NOT NULL,
			step TEXT NOT NULL,
			source TEXT NOT NULL,
			recorded_at INTEGER NOT NULL,
			PRIMARY KEY (location, identifier)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_identifiers_date ON identifiers(location, date);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := l.setMeta("schema_version", schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	l.logger.Debug("ledger opened", "path", dbPath)
	return nil
}

// Close closes the database connection
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Path returns the database file in use
func (l *Ledger) Path() string {
	return l.dbPath
}

// Record stores an issued identifier. Recording it twice keeps the first row.
func (l *Ledger) Record(location string, id domain.Identifier, source string) error {
	if l.db == nil {
		return errNotOpen
	}
	_, err := l.db.Exec(`
		INSERT OR IGNORE INTO identifiers (location, identifier, project, date, step, source, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, location, id.String(), id.Project, id.Date, id.Step, source, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", id, err)
	}
	l.logger.Debug("identifier recorded", "location", location, "identifier", id.String(), "source", source)
	return nil
}

// Sync replaces every row of location with the identifiers in hctx
func (l *Ledger) Sync(location string, hctx *domain.HistoryContext) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	tx, err := l.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}
	defer tx.rollback()

	deleted, err := tx.deleteLocation(location)
	if err != nil {
		return nil, err
	}
	stats.EntriesDeleted = deleted

	now := time.Now()
	for _, id := range hctx.Timeline() {
		names := hctx.Names(id)
		stats.NamesScanned += len(names)

		source := ""
		if len(names) > 0 {
			source = names[0]
		}
		if err := tx.insertIdentifier(location, id, source, now); err != nil {
			return nil, err
		}
		stats.EntriesAdded++
	}

	if err := tx.setMeta("last_sync:"+location, fmt.Sprint(now.Unix())); err != nil {
		return nil, err
	}
	if err := tx.commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}

	stats.Duration = time.Since(start)
	l.logger.Info("ledger synced",
		"location", location,
		"added", stats.EntriesAdded,
		"deleted", stats.EntriesDeleted,
		"duration", stats.Duration)
	return stats, nil
}

// LastSync returns when location was last synced
func (l *Ledger) LastSync(location string) (time.Time, bool) {
	if l.db == nil {
		return time.Time{}, false
	}
	var unix int64
	err := l.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, "last_sync:"+location).Scan(&unix)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// Entries returns the rows of location, oldest identifier first
func (l *Ledger) Entries(location string) ([]domain.LedgerEntry, error) {
	if l.db == nil {
		return nil, errNotOpen
	}
	rows, err := l.db.Query(`
		SELECT identifier, source, recorded_at
		FROM identifiers WHERE location = ?
		ORDER BY date, length(step), step, project
	`, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var raw, source string
		var recordedAt int64
		if err := rows.Scan(&raw, &source, &recordedAt); err != nil {
			return nil, err
		}

		id, err := domain.ParseIdentifier(raw)
		if err != nil {
			l.logger.Warn("skipping malformed ledger row", "location", location, "identifier", raw)
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			Location:   location,
			Identifier: id,
			Source:     source,
			RecordedAt: time.Unix(recordedAt, 0),
		})
	}

	return entries, rows.Err()
}

// Locations returns every location with at least one row
func (l *Ledger) Locations() ([]string, error) {
	if l.db == nil {
		return nil, errNotOpen
	}
	rows, err := l.db.Query(`SELECT DISTINCT location FROM identifiers ORDER BY location`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

// BuildContext reads the history of location from the ledger. An unknown
// location yields an empty history.
func (l *Ledger) BuildContext(location string) (*domain.HistoryContext, domain.Timeline, error) {
	entries, err := l.Entries(location)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	hctx := domain.NewHistoryContext(location)
	for _, e := range entries {
		hctx.Add(e.Identifier, e.Source)
	}
	return hctx, hctx.Timeline(), nil
}

// Last returns the latest identifiers of the timeline
func (l *Ledger) Last(timeline domain.Timeline) []string {
	return timeline.Last().Strings()
}

// setMeta upserts a meta key
func (l *Ledger) setMeta(key, value string) error {
	if l.db == nil {
		return errNotOpen
	}
	_, err := l.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// beginTx starts a new transaction
func (l *Ledger) beginTx() (*ledgerTx, error) {
	if l.db == nil {
		return nil, errNotOpen
	}
	tx, err := l.db.Begin()
	if err != nil {
		return nil, err
	}
	return &ledgerTx{tx: tx}, nil
}
