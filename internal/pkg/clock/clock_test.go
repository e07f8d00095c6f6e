package clock

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		want    ClockTime
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 9*60 + 30, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"nope", 0, true},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %v", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestSpan(t *testing.T) {
	cases := []struct {
		start, end string
		want       time.Duration
	}{
		{"09:00", "17:00", 8 * time.Hour},
		{"22:00", "06:00", 8 * time.Hour},
		{"00:00", "00:00", 24 * time.Hour},
		{"23:30", "00:15", 45 * time.Minute},
	}
	for _, c := range cases {
		got := Span(MustParse(c.start), MustParse(c.end))
		if got != c.want {
			t.Errorf("Span(%s, %s) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestWraps(t *testing.T) {
	if !Wraps(MustParse("22:00"), MustParse("06:00")) {
		t.Error("22:00-06:00 should wrap")
	}
	if Wraps(MustParse("09:00"), MustParse("17:00")) {
		t.Error("09:00-17:00 should not wrap")
	}
}

func TestOn(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	got := MustParse("14:30").On(date)
	want := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestIsNightSpan(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	at := func(d int, hhmm string) time.Time {
		return MustParse(hhmm).On(day.AddDate(0, 0, d))
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"day shift", at(0, "09:00"), at(0, "17:00"), false},
		{"overnight", at(0, "22:00"), at(1, "06:00"), true},
		{"late evening", at(0, "18:00"), at(0, "23:00"), true},
		{"early morning start", at(0, "04:00"), at(0, "12:00"), true},
		{"ends at window open", at(0, "14:00"), at(0, "22:00"), false},
		{"starts at window close", at(0, "06:00"), at(0, "14:00"), false},
		{"empty span", at(0, "09:00"), at(0, "09:00"), false},
	}
	for _, c := range cases {
		if got := IsNightSpan(c.start, c.end); got != c.want {
			t.Errorf("%s: IsNightSpan = %v, want %v", c.name, got, c.want)
		}
	}
}
