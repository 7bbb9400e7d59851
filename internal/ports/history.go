package ports

import (
	"time"

	"contexere/internal/domain"
)

// HistoryProvider builds the history of issued identifiers for a location
type HistoryProvider interface {
	// BuildContext collects every identifier found at location together with
	// the names carrying it, and returns them as an ordered timeline
	BuildContext(location string) (*domain.HistoryContext, domain.Timeline, error)

	// Last returns the most recent identifiers of a timeline. The sequencer
	// only proceeds when exactly one is returned.
	Last(timeline domain.Timeline) []string
}

// Ledger is a HistoryProvider that also keeps identifiers once issued
type Ledger interface {
	HistoryProvider

	Record(location string, id domain.Identifier, source string) error
	Sync(location string, hctx *domain.HistoryContext) (*domain.SyncStats, error)
	Entries(location string) ([]domain.LedgerEntry, error)
	Locations() ([]string, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// EntryCreator creates a named entry (file or directory) at a location
type EntryCreator interface {
	CreateEntry(location, name string, dir bool) (string, error)
}
