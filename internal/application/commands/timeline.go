package commands

import (
	"context"

	"contexere/internal/application"
	"contexere/internal/domain"
	"contexere/internal/ports"
)

// TimelineResult contains a location's history
type TimelineResult struct {
	Timeline domain.Timeline // Oldest first, trimmed to the limit
	Total    int
	Last     []string
	Context  *domain.HistoryContext
}

// TimelineCommand lists the identifiers issued at a location
type TimelineCommand struct {
	provider ports.HistoryProvider
	Location string
	Limit    int // Newest entries to keep; 0 keeps all
}

// NewTimelineCommand creates a new TimelineCommand
func NewTimelineCommand(provider ports.HistoryProvider, location string, limit int) *TimelineCommand {
	return &TimelineCommand{
		provider: provider,
		Location: location,
		Limit:    limit,
	}
}

// Validate checks if the timeline operation is valid
func (c *TimelineCommand) Validate() error {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	if c.Limit < 0 {
		return &application.ValidationError{
			Field:   "limit",
			Message: "limit cannot be negative",
		}
	}
	return nil
}

// Execute runs the timeline command
func (c *TimelineCommand) Execute(ctx context.Context) (*TimelineResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hctx, timeline, err := c.provider.BuildContext(c.Location)
	if err != nil {
		return nil, err
	}

	return &TimelineResult{
		Timeline: timeline.Tail(c.Limit),
		Total:    len(timeline),
		Last:     c.provider.Last(timeline),
		Context:  hctx,
	}, nil
}
