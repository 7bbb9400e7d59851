package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contexere/internal/application"
	"contexere/internal/domain"
)

// DecodeResult contains the result of decoding a token
type DecodeResult struct {
	Time    time.Time
	Message string
}

// DecodeCommand decodes a date or date+time token
type DecodeCommand struct {
	Token    string
	Timezone string
}

// NewDecodeCommand creates a new DecodeCommand
func NewDecodeCommand(token, timezone string) *DecodeCommand {
	return &DecodeCommand{
		Token:    token,
		Timezone: timezone,
	}
}

// Validate checks if the decode operation is valid
func (c *DecodeCommand) Validate() error {
	if err := application.ValidateRequired("token", c.Token); err != nil {
		return err
	}
	_, err := application.ValidateTimezone("timezone", c.Timezone)
	return err
}

// Execute runs the decode command
func (c *DecodeCommand) Execute(ctx context.Context) (*DecodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	loc, _ := application.ValidateTimezone("timezone", c.Timezone)

	token := strings.TrimSpace(c.Token)
	t, err := domain.Decode(token, loc)
	if err != nil {
		return nil, err
	}

	layout := time.DateOnly
	if len(token) == domain.DatetimeTokenLen {
		layout = "2006-01-02 15:04 MST"
	}

	return &DecodeResult{
		Time:    t,
		Message: fmt.Sprintf("%s  %s", token, t.Format(layout)),
	}, nil
}
