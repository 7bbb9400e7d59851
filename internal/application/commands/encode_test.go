package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"contexere/internal/application"
)

func TestEncodeCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		withTime bool
		seconds  bool
		timezone string
		wantErr  bool
		errMsg   string
	}{
		{name: "date only", wantErr: false},
		{name: "date and time", withTime: true, wantErr: false},
		{name: "seconds with time", withTime: true, seconds: true, wantErr: false},
		{name: "seconds without time", seconds: true, wantErr: true, errMsg: "seconds require the time"},
		{name: "unknown zone", timezone: "Nowhere/Land", wantErr: true, errMsg: "unknown time zone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &EncodeCommand{
				WithTime: tt.withTime,
				Seconds:  tt.seconds,
				Timezone: tt.timezone,
			}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEncodeCommand_Execute(t *testing.T) {
	now := fixedClock(time.Date(2021, 10, 31, 17, 42, 9, 0, time.UTC))

	tests := []struct {
		name     string
		date     string
		withTime bool
		seconds  bool
		want     string
	}{
		{name: "now, date only", want: "21xV"},
		{name: "now with time", withTime: true, want: "21xVr42"},
		{name: "now with seconds", withTime: true, seconds: true, want: "21xVr4209"},
		{name: "text date", date: "2000-01-01", want: "00o1"},
		{name: "text datetime", date: "2099-12-31 23:59:00", withTime: true, want: "99zVx59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewEncodeCommand(now, tt.date, tt.withTime, tt.seconds, "")
			result, err := cmd.Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if result.Token != tt.want {
				t.Errorf("expected %s, got %s", tt.want, result.Token)
			}
			if !contains(result.Message, tt.want) {
				t.Errorf("expected message to contain %s, got %q", tt.want, result.Message)
			}
		})
	}
}

func TestEncodeCommand_OutOfRangeYear(t *testing.T) {
	cmd := NewEncodeCommand(nil, "1999-12-31", false, false, "UTC")

	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, application.ErrYearOutOfRange) {
		t.Errorf("expected ErrYearOutOfRange, got %v", err)
	}
}
