package domain

import (
	"errors"
	"testing"
	"time"
)

func withClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = prev })
}

func TestEncodeDate_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"first day of range", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "00o1"},
		{"last day of range", time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC), "99zV"},
		{"day nine", time.Date(2021, 3, 9, 0, 0, 0, 0, time.UTC), "21q9"},
		{"day ten", time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC), "21qA"},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "24pT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeDate(At(tt.date), time.UTC)
			if err != nil {
				t.Fatalf("EncodeDate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEncodeDate_RejectsYearsOutsideRange(t *testing.T) {
	for _, year := range []int{1999, 2100, 1} {
		_, err := EncodeDate(At(time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)), nil)
		if !errors.Is(err, ErrYearOutOfRange) {
			t.Errorf("year %d: expected ErrYearOutOfRange, got %v", year, err)
		}

		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) || rangeErr.Year != year {
			t.Errorf("year %d: expected RangeError carrying the year, got %v", year, err)
		}
	}
}

func TestEncodeTime(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		seconds bool
		want    string
	}{
		{"midnight", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), false, "a00"},
		{"last minute", time.Date(2022, 1, 1, 23, 59, 0, 0, time.UTC), false, "x59"},
		{"padded minutes", time.Date(2022, 1, 1, 13, 5, 0, 0, time.UTC), false, "n05"},
		{"with seconds", time.Date(2022, 1, 1, 13, 5, 7, 0, time.UTC), true, "n0507"},
		{"seconds dropped", time.Date(2022, 1, 1, 13, 5, 7, 0, time.UTC), false, "n05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeTime(At(tt.date), tt.seconds, nil)
			if err != nil {
				t.Fatalf("EncodeTime failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEncodeDatetime(t *testing.T) {
	date := time.Date(2021, 10, 31, 17, 42, 9, 0, time.UTC)

	got, err := EncodeDatetime(At(date), false, time.UTC)
	if err != nil {
		t.Fatalf("EncodeDatetime failed: %v", err)
	}
	if got != "21xVr42" {
		t.Errorf("expected 21xVr42, got %s", got)
	}

	got, err = EncodeDatetime(At(date), true, time.UTC)
	if err != nil {
		t.Fatalf("EncodeDatetime failed: %v", err)
	}
	if got != "21xVr4209" {
		t.Errorf("expected 21xVr4209, got %s", got)
	}
}

func TestEncode_AbsentInputUsesClockInLocation(t *testing.T) {
	// 23:30 UTC on Jan 31 is already Feb 1 in Tokyo
	withClock(t, time.Date(2023, 1, 31, 23, 30, 0, 0, time.UTC))

	got, err := EncodeDate(Now(), nil)
	if err != nil {
		t.Fatalf("EncodeDate failed: %v", err)
	}
	if got != "23oV" {
		t.Errorf("expected 23oV in UTC, got %s", got)
	}

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	got, err = EncodeDatetime(Now(), false, tokyo)
	if err != nil {
		t.Fatalf("EncodeDatetime failed: %v", err)
	}
	if got != "23p1i30" {
		t.Errorf("expected 23p1i30 in Tokyo, got %s", got)
	}
}

func TestEncode_TextInput(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso date", "2021-01-01", "21o1"},
		{"iso datetime", "2021-07-04 08:15:00", "21u4"},
		{"surrounding space", "  2030-12-25 ", "30zP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeDate(Text(tt.text), time.UTC)
			if err != nil {
				t.Fatalf("EncodeDate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	_, err := EncodeDate(Text("not a date"), time.UTC)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for unparseable text, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  time.Time
	}{
		{"date only", "00o1", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last day", "99zV", time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"digit day", "21q9", time.Date(2021, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"letter day", "21qA", time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"with time", "21xVr42", time.Date(2021, 10, 31, 17, 42, 0, 0, time.UTC)},
		{"midnight", "22o1a00", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last minute", "22o1x59", time.Date(2022, 1, 1, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.token, nil)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got.Location() != time.UTC {
				t.Errorf("expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestDecode_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	got, err := Decode("21xVr42", loc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := time.Date(2021, 10, 31, 17, 42, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDecode_RejectsInvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"too short", "21o"},
		{"five chars", "21o1a"},
		{"with seconds", "21o1a0000"},
		{"month before o", "21n1"},
		{"month uppercase", "21O1"},
		{"day zero", "21o0"},
		{"day past V", "21oW"},
		{"day lowercase", "21oa"},
		{"year not digits", "2xo1"},
		{"hour past x", "21o1y00"},
		{"hour uppercase", "21o1A00"},
		{"minutes not digits", "21o1a5x"},
		{"minutes past 59", "21o1a60"},
		{"february 30", "22pU"},
		{"april 31", "22rV"},
		{"february 29 off leap year", "23pT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token, nil)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat, got %v", err)
			}

			var formatErr *FormatError
			if !errors.As(err, &formatErr) || formatErr.Input != tt.token {
				t.Errorf("expected FormatError for %q, got %v", tt.token, err)
			}
		})
	}
}

func TestRoundTrip_EveryDay(t *testing.T) {
	start := time.Date(MinYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(MaxYear+1, 1, 1, 0, 0, 0, 0, time.UTC)

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		// spread hours and minutes across the days
		n := d.YearDay() + d.Year()
		in := time.Date(d.Year(), d.Month(), d.Day(), n%24, n%60, n%60, 123, time.UTC)

		date, err := EncodeDate(At(in), nil)
		if err != nil {
			t.Fatalf("EncodeDate(%v) failed: %v", in, err)
		}
		got, err := Decode(date, nil)
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", date, err)
		}
		if !got.Equal(d) {
			t.Fatalf("date round trip of %v: got %v via %s", d, got, date)
		}

		token, err := EncodeDatetime(At(in), false, nil)
		if err != nil {
			t.Fatalf("EncodeDatetime(%v) failed: %v", in, err)
		}
		got, err = Decode(token, nil)
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", token, err)
		}
		if want := in.Truncate(time.Minute); !got.Equal(want) {
			t.Fatalf("datetime round trip of %v: got %v via %s", in, got, token)
		}
	}
}

func TestRoundTrip_EveryMinute(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			in := time.Date(2042, 6, 15, hour, minute, 0, 0, time.UTC)

			token, err := EncodeDatetime(At(in), false, nil)
			if err != nil {
				t.Fatalf("EncodeDatetime(%v) failed: %v", in, err)
			}
			if len(token) != DatetimeTokenLen {
				t.Fatalf("expected %d characters, got %q", DatetimeTokenLen, token)
			}
			got, err := Decode(token, nil)
			if err != nil {
				t.Fatalf("Decode(%s) failed: %v", token, err)
			}
			if !got.Equal(in) {
				t.Fatalf("expected %v, got %v via %s", in, got, token)
			}
		}
	}
}

func TestIsDateToken(t *testing.T) {
	valid := []string{"00o1", "99zV", "21pU"} // 21pU passes the grammar even though Feb 30 does not exist
	invalid := []string{"", "00o", "00o1a", "0ao1", "00a1", "00o0", "00oW"}

	for _, s := range valid {
		if !IsDateToken(s) {
			t.Errorf("expected %q to be a date token", s)
		}
	}
	for _, s := range invalid {
		if IsDateToken(s) {
			t.Errorf("expected %q not to be a date token", s)
		}
	}
}
