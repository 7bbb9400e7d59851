package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Lookup tables. Position 0 is January, day 1 and hour 0 respectively.
const (
	monthAlphabet = "opqrstuvwxyz"
	dayAlphabet   = "123456789ABCDEFGHIJKLMNOPQRSTUV"
	hourAlphabet  = "abcdefghijklmnopqrstuvwx"
)

const (
	// MinYear and MaxYear bound the two-digit year field
	MinYear = 2000
	MaxYear = 2099

	DateTokenLen     = 4                           // YYMD
	TimeTokenLen     = 3                           // HMM
	DatetimeTokenLen = DateTokenLen + TimeTokenLen // YYMDHMM
)

type inputKind int

const (
	inputAbsent inputKind = iota
	inputText
	inputCalendar
)

// DateInput is the date handed to the encoders: absent (now), raw text, or a calendar time
type DateInput struct {
	kind inputKind
	text string
	at   time.Time
}

// Now returns an input that samples the wall clock when resolved
func Now() DateInput {
	return DateInput{kind: inputAbsent}
}

// Text returns an input parsed from free-form date text when resolved
func Text(s string) DateInput {
	return DateInput{kind: inputText, text: s}
}

// At returns an input for a concrete calendar time, used as given
func At(t time.Time) DateInput {
	return DateInput{kind: inputCalendar, at: t}
}

// clock is replaced in tests
var clock = time.Now

// Resolve turns the input into a concrete time. Text is parsed in loc, absent
// input reads the clock in loc. A nil loc means UTC.
func (in DateInput) Resolve(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch in.kind {
	case inputText:
		t, err := dateparse.ParseIn(strings.TrimSpace(in.text), loc)
		if err != nil {
			return time.Time{}, &FormatError{Input: in.text, Reason: err.Error()}
		}
		return t, nil
	case inputCalendar:
		return in.at, nil
	default:
		return clock().In(loc), nil
	}
}

// EncodeDate returns the YYMD token for the input date
func EncodeDate(in DateInput, loc *time.Location) (string, error) {
	t, err := in.Resolve(loc)
	if err != nil {
		return "", err
	}
	return dateToken(t)
}

// EncodeTime returns the HMM token, or HMMSS when seconds is set
func EncodeTime(in DateInput, seconds bool, loc *time.Location) (string, error) {
	t, err := in.Resolve(loc)
	if err != nil {
		return "", err
	}
	return timeToken(t, seconds), nil
}

// EncodeDatetime returns the date token followed by the time token. The input
// is resolved once so both halves describe the same instant.
func EncodeDatetime(in DateInput, seconds bool, loc *time.Location) (string, error) {
	t, err := in.Resolve(loc)
	if err != nil {
		return "", err
	}
	date, err := dateToken(t)
	if err != nil {
		return "", err
	}
	return date + timeToken(t, seconds), nil
}

func dateToken(t time.Time) (string, error) {
	year, month, day := t.Date()
	if year < MinYear || year > MaxYear {
		return "", &RangeError{Year: year}
	}
	return fmt.Sprintf("%02d%c%c", year-MinYear, monthAlphabet[month-1], dayAlphabet[day-1]), nil
}

func timeToken(t time.Time, seconds bool) string {
	token := fmt.Sprintf("%c%02d", hourAlphabet[t.Hour()], t.Minute())
	if seconds {
		token += fmt.Sprintf("%02d", t.Second())
	}
	return token
}

// Decode parses a 4 character date token or a 7 character date+time token.
// The result is in loc (UTC when nil) with seconds set to zero.
func Decode(token string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	if len(token) != DateTokenLen && len(token) != DatetimeTokenLen {
		return time.Time{}, &FormatError{
			Input:  token,
			Reason: fmt.Sprintf("expected %d or %d characters, got %d", DateTokenLen, DatetimeTokenLen, len(token)),
		}
	}

	year, month, day, err := decodeDate(token)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute := 0, 0
	if len(token) == DatetimeTokenLen {
		hour = strings.IndexByte(hourAlphabet, token[4])
		if hour < 0 {
			return time.Time{}, &FormatError{Input: token, Reason: fmt.Sprintf("hour %q outside a-x", token[4])}
		}
		var ok bool
		minute, ok = twoDigits(token[5:7])
		if !ok || minute > 59 {
			return time.Time{}, &FormatError{Input: token, Reason: fmt.Sprintf("minutes %q outside 00-59", token[5:7])}
		}
	}

	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

func decodeDate(token string) (int, time.Month, int, error) {
	yy, ok := twoDigits(token[:2])
	if !ok {
		return 0, 0, 0, &FormatError{Input: token, Reason: fmt.Sprintf("year %q is not two digits", token[:2])}
	}

	m := strings.IndexByte(monthAlphabet, token[2])
	if m < 0 {
		return 0, 0, 0, &FormatError{Input: token, Reason: fmt.Sprintf("month %q outside o-z", token[2])}
	}

	d := strings.IndexByte(dayAlphabet, token[3])
	if d < 0 {
		return 0, 0, 0, &FormatError{Input: token, Reason: fmt.Sprintf("day %q outside 1-9, A-V", token[3])}
	}

	year, month, day := MinYear+yy, time.Month(m+1), d+1
	if day > daysIn(year, month) {
		return 0, 0, 0, &FormatError{Input: token, Reason: fmt.Sprintf("%s has no day %d in %d", month, day, year)}
	}
	return year, month, day, nil
}

// IsDateToken reports whether s is a YYMD token by the grammar alone. It does
// not check that the day exists in the month.
func IsDateToken(s string) bool {
	if len(s) != DateTokenLen {
		return false
	}
	if _, ok := twoDigits(s[:2]); !ok {
		return false
	}
	return strings.IndexByte(monthAlphabet, s[2]) >= 0 && strings.IndexByte(dayAlphabet, s[3]) >= 0
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
