package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contexere/internal/application"
	"contexere/internal/domain"
	"contexere/internal/ports"
)

// EncodeResult contains the result of encoding a date
type EncodeResult struct {
	Token   string
	Time    time.Time // The resolved input
	Message string
}

// EncodeCommand encodes a date, optionally with its time, into a token
type EncodeCommand struct {
	clock    ports.Clock
	Date     string // Free-form date text; empty means now
	WithTime bool
	Seconds  bool
	Timezone string
}

// NewEncodeCommand creates a new EncodeCommand
func NewEncodeCommand(clock ports.Clock, date string, withTime, seconds bool, timezone string) *EncodeCommand {
	return &EncodeCommand{
		clock:    clock,
		Date:     date,
		WithTime: withTime,
		Seconds:  seconds,
		Timezone: timezone,
	}
}

// Validate checks if the encode operation is valid
func (c *EncodeCommand) Validate() error {
	if c.Seconds && !c.WithTime {
		return &application.ValidationError{
			Field:   "seconds",
			Message: "seconds require the time to be encoded",
		}
	}
	_, err := application.ValidateTimezone("timezone", c.Timezone)
	return err
}

// Execute runs the encode command
func (c *EncodeCommand) Execute(ctx context.Context) (*EncodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	loc, _ := application.ValidateTimezone("timezone", c.Timezone)

	t, err := c.input(loc).Resolve(loc)
	if err != nil {
		return nil, err
	}

	var token string
	if c.WithTime {
		token, err = domain.EncodeDatetime(domain.At(t), c.Seconds, loc)
	} else {
		token, err = domain.EncodeDate(domain.At(t), loc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", t.Format(time.RFC3339), err)
	}

	return &EncodeResult{
		Token:   token,
		Time:    t,
		Message: fmt.Sprintf("%s  %s", token, t.Format(time.RFC3339)),
	}, nil
}

func (c *EncodeCommand) input(loc *time.Location) domain.DateInput {
	if strings.TrimSpace(c.Date) != "" {
		return domain.Text(c.Date)
	}
	if c.clock != nil {
		return domain.At(c.clock.Now().In(loc))
	}
	return domain.Now()
}
