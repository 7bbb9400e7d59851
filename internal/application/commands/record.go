package commands

import (
	"context"
	"fmt"

	"contexere/internal/application"
	"contexere/internal/domain"
	"contexere/internal/ports"
)

// RecordResult contains the result of recording an identifier
type RecordResult struct {
	Identifier domain.Identifier
	Message    string
}

// RecordCommand stores an issued identifier in the ledger
type RecordCommand struct {
	ledger     ports.Ledger
	Location   string
	Identifier string
	Source     string
}

// NewRecordCommand creates a new RecordCommand
func NewRecordCommand(ledger ports.Ledger, location, identifier, source string) *RecordCommand {
	return &RecordCommand{
		ledger:     ledger,
		Location:   location,
		Identifier: identifier,
		Source:     source,
	}
}

// Validate checks if the record operation is valid
func (c *RecordCommand) Validate() error {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	if err := application.ValidateRequired("identifier", c.Identifier); err != nil {
		return err
	}
	_, err := application.ValidateIdentifier("identifier", c.Identifier)
	return err
}

// Execute runs the record command
func (c *RecordCommand) Execute(ctx context.Context) (*RecordResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, _ := application.ValidateIdentifier("identifier", c.Identifier)

	if err := c.ledger.Record(c.Location, id, c.Source); err != nil {
		return nil, fmt.Errorf("failed to record identifier: %w", err)
	}

	return &RecordResult{
		Identifier: id,
		Message:    fmt.Sprintf("Recorded %s in %s", id, c.Location),
	}, nil
}

// SyncResult contains the result of syncing a location into the ledger
type SyncResult struct {
	Stats   *domain.SyncStats
	Message string
}

// SyncCommand rebuilds a location's ledger entries from a scanned source
type SyncCommand struct {
	source   ports.HistoryProvider
	ledger   ports.Ledger
	Location string
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(source ports.HistoryProvider, ledger ports.Ledger, location string) *SyncCommand {
	return &SyncCommand{
		source:   source,
		ledger:   ledger,
		Location: location,
	}
}

// Validate checks if the sync operation is valid
func (c *SyncCommand) Validate() error {
	return application.ValidateRequired("location", c.Location)
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context) (*SyncResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hctx, _, err := c.source.BuildContext(c.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", c.Location, err)
	}

	stats, err := c.ledger.Sync(c.Location, hctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sync ledger: %w", err)
	}

	return &SyncResult{
		Stats: stats,
		Message: fmt.Sprintf("Synced %s: %d added, %d removed, %d names scanned",
			c.Location, stats.EntriesAdded, stats.EntriesDeleted, stats.NamesScanned),
	}, nil
}
