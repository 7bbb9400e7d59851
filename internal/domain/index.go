package domain

import "time"

// LedgerEntry is one issued identifier kept in the ledger
type LedgerEntry struct {
	Location   string     // Directory or namespace the identifier belongs to
	Identifier Identifier // Parsed identifier (primary key with Location)
	Source     string     // Name that carried it (file, "cli", "mcp", ...)
	RecordedAt time.Time
}

// SyncStats holds statistics from a ledger sync
type SyncStats struct {
	EntriesAdded   int
	EntriesDeleted int
	NamesScanned   int
	Duration       time.Duration
}
