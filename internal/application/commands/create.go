package commands

import (
	"context"
	"fmt"
	"strings"

	"contexere/internal/application"
	"contexere/internal/domain"
	"contexere/internal/ports"
)

// CreateMode indicates what type of entry to create
type CreateMode int

const (
	CreateModeFile CreateMode = iota
	CreateModeDirectory
)

// CreateNextResult contains the created entry
type CreateNextResult struct {
	Identifier domain.Identifier
	Path       string
	Recorded   bool
	Message    string
}

// CreateNextCommand suggests the next identifier for a location and creates
// an entry named after it. When a ledger is set the identifier is recorded
// there too.
type CreateNextCommand struct {
	suggest *SuggestNextCommand
	creator ports.EntryCreator
	ledger  ports.Ledger
	Suffix  string
	Mode    CreateMode
	Source  string
}

// NewCreateNextCommand creates a new CreateNextCommand. ledger may be nil.
func NewCreateNextCommand(suggest *SuggestNextCommand, creator ports.EntryCreator, ledger ports.Ledger, suffix string, mode CreateMode) *CreateNextCommand {
	return &CreateNextCommand{
		suggest: suggest,
		creator: creator,
		ledger:  ledger,
		Suffix:  suffix,
		Mode:    mode,
		Source:  "cli",
	}
}

// Validate checks if the create operation is valid
func (c *CreateNextCommand) Validate() error {
	if c.suggest == nil {
		return &application.ValidationError{
			Field:   "provider",
			Message: "history provider is required",
		}
	}
	if strings.ContainsAny(c.Suffix, `/\`) {
		return &application.ValidationError{
			Field:   "suffix",
			Message: fmt.Sprintf("suffix cannot contain a path separator: %q", c.Suffix),
		}
	}
	if c.Suffix != "" && isLetterByte(c.Suffix[0]) {
		return &application.ValidationError{
			Field:   "suffix",
			Message: fmt.Sprintf("suffix cannot start with a letter: %q", c.Suffix),
		}
	}
	return c.suggest.Validate()
}

// Execute runs the create command
func (c *CreateNextCommand) Execute(ctx context.Context) (*CreateNextResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	suggestion, err := c.suggest.Execute(ctx)
	if err != nil {
		return nil, err
	}
	id := suggestion.Identifier

	path, err := c.creator.CreateEntry(c.suggest.Location, id.String()+c.Suffix, c.Mode == CreateModeDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	result := &CreateNextResult{
		Identifier: id,
		Path:       path,
		Message:    fmt.Sprintf("Created %s", path),
	}

	if c.ledger != nil {
		if err := c.ledger.Record(c.suggest.Location, id, c.Source); err != nil {
			return result, fmt.Errorf("created %s but failed to record it: %w", path, err)
		}
		result.Recorded = true
	}

	return result, nil
}

// isLetterByte reports whether b would extend the identifier's step
func isLetterByte(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
