package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"contexere/internal/domain"
)

// ledgerTx groups the writes of one sync
type ledgerTx struct {
	tx   *sql.Tx
	done bool
}

// insertIdentifier inserts or replaces one row
func (t *ledgerTx) insertIdentifier(location string, id domain.Identifier, source string, at time.Time) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO identifiers (location, identifier, project, date, step, source, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, location, id.String(), id.Project, id.Date, id.Step, source, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", id, err)
	}
	return nil
}

// deleteLocation removes every row of a location and returns how many went
func (t *ledgerTx) deleteLocation(location string) (int, error) {
	res, err := t.tx.Exec(`DELETE FROM identifiers WHERE location = ?`, location)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", location, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// setMeta upserts a meta key
func (t *ledgerTx) setMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// commit commits the transaction
func (t *ledgerTx) commit() error {
	t.done = true
	return t.tx.Commit()
}

// rollback aborts the transaction unless it was committed
func (t *ledgerTx) rollback() {
	if t.done {
		return
	}
	_ = t.tx.Rollback()
}
