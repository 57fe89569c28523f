package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone(t *testing.T) {
	now, err := NowInTimezone("UTC")
	if err != nil {
		t.Fatalf("NowInTimezone() error = %v", err)
	}
	if now.IsZero() {
		t.Errorf("NowInTimezone() returned zero time")
	}
	if now.Location().String() != "UTC" {
		t.Errorf("NowInTimezone() location = %v, want UTC", now.Location())
	}

	if _, err := NowInTimezone("Invalid/Timezone"); err == nil {
		t.Errorf("NowInTimezone() expected error for invalid timezone")
	}
}

func TestParseDateInLocation(t *testing.T) {
	est, _ := time.LoadLocation("America/New_York")

	got, err := ParseDateInLocation("2025-12-31", est)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 31 {
		t.Errorf("ParseDateInLocation() = %v, want 2025-12-31", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("ParseDateInLocation() time = %02d:%02d:%02d, want 00:00:00", got.Hour(), got.Minute(), got.Second())
	}
	if got.Location() != est {
		t.Errorf("ParseDateInLocation() location = %v, want %v", got.Location(), est)
	}

	if _, err := ParseDateInLocation("2026/01/15", est); err == nil {
		t.Errorf("ParseDateInLocation() expected error for invalid format")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		want    int
		wantErr bool
	}{
		{name: "same day", from: "2026-03-07", to: "2026-03-07", want: 0},
		{name: "next day", from: "2026-03-07", to: "2026-03-08", want: 1},
		{name: "across DST start", from: "2026-03-07", to: "2026-03-09", want: 2},
		{name: "across month end", from: "2026-01-31", to: "2026-02-01", want: 1},
		{name: "across leap day", from: "2028-02-28", to: "2028-03-01", want: 2},
		{name: "backwards", from: "2026-03-08", to: "2026-03-07", want: -1},
		{name: "invalid from", from: "bogus", to: "2026-03-07", wantErr: true},
		{name: "invalid to", from: "2026-03-07", to: "07/03/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSecondsUntilMidnight(t *testing.T) {
	est, _ := time.LoadLocation("America/New_York")

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "noon UTC",
			now:  time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
			want: 12 * 3600,
		},
		{
			name: "one second before midnight",
			now:  time.Date(2026, 1, 15, 23, 59, 59, 0, time.UTC),
			want: 1,
		},
		{
			name: "fractional second rounds up",
			now:  time.Date(2026, 1, 15, 23, 59, 59, 500_000_000, time.UTC),
			want: 1,
		},
		{
			name: "exactly midnight starts a full day",
			now:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			want: 24 * 3600,
		},
		{
			name: "DST start day is 23 hours long",
			now:  time.Date(2026, 3, 8, 0, 0, 0, 0, est),
			want: 23 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecondsUntilMidnight(tt.now); got != tt.want {
				t.Errorf("SecondsUntilMidnight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{-5, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
	}

	for _, tt := range tests {
		if got := FormatCountdown(tt.seconds); got != tt.want {
			t.Errorf("FormatCountdown(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") || !ValidateTimezone("Europe/London") {
		t.Error("ValidateTimezone() rejected a valid timezone")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone() accepted an invalid timezone")
	}
}
