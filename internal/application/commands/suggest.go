package commands

import (
	"context"
	"errors"
	"fmt"

	"contexere/internal/application"
	"contexere/internal/domain"
	"contexere/internal/ports"
)

// SuggestNextResult contains the suggested identifier and what it was derived from
type SuggestNextResult struct {
	Identifier domain.Identifier
	Latest     []string
	Today      string
	Context    *domain.HistoryContext
	Message    string
}

// SuggestNextCommand suggests the next identifier to issue at a location.
// It builds the location's history, takes the single latest identifier and
// either bumps its step (same day) or starts today at step "a".
type SuggestNextCommand struct {
	provider ports.HistoryProvider
	Clock    ports.Clock
	Location string
	Timezone string
}

// NewSuggestNextCommand creates a new SuggestNextCommand reading the system clock
func NewSuggestNextCommand(provider ports.HistoryProvider, location, timezone string) *SuggestNextCommand {
	return &SuggestNextCommand{
		provider: provider,
		Clock:    ports.SystemClock{},
		Location: location,
		Timezone: timezone,
	}
}

// Validate checks if the suggest operation is valid
func (c *SuggestNextCommand) Validate() error {
	if c.provider == nil {
		return &application.ValidationError{
			Field:   "provider",
			Message: "history provider is required",
		}
	}
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	_, err := application.ValidateTimezone("timezone", c.Timezone)
	return err
}

// Execute runs the suggest command
func (c *SuggestNextCommand) Execute(ctx context.Context) (*SuggestNextResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, _ := application.ValidateTimezone("timezone", c.Timezone)

	hctx, timeline, err := c.provider.BuildContext(c.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to build history: %w", err)
	}
	latest := c.provider.Last(timeline)

	clock := c.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	today, err := domain.EncodeDate(domain.At(clock.Now().In(loc)), loc)
	if err != nil {
		return nil, err
	}

	next, err := domain.NextIdentifier(latest, today)
	if err != nil {
		var histErr *application.HistoryError
		if errors.As(err, &histErr) {
			histErr.Location = c.Location
		}
		return nil, err
	}

	return &SuggestNextResult{
		Identifier: next,
		Latest:     latest,
		Today:      today,
		Context:    hctx,
		Message:    fmt.Sprintf("Next identifier: %s", next),
	}, nil
}
