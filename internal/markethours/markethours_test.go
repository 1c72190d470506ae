package markethours

import (
	"strings"
	"testing"
	"time"
)

func et(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, Eastern)
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"wednesday midday", et(2024, time.March, 13, 12, 0), true},
		{"open bell", et(2024, time.March, 13, 9, 30), true},
		{"close bell", et(2024, time.March, 13, 16, 0), true},
		{"just before open", et(2024, time.March, 13, 9, 29), false},
		{"just after close", et(2024, time.March, 13, 16, 1), false},
		{"saturday", et(2024, time.March, 16, 12, 0), false},
		{"sunday", et(2024, time.March, 17, 12, 0), false},
		{"winter friday", et(2024, time.January, 5, 10, 0), true},
	}
	for _, tt := range tests {
		if got := IsOpen(tt.t); got != tt.want {
			t.Errorf("%s: IsOpen(%s) = %v, want %v", tt.name, tt.t, got, tt.want)
		}
	}
}

func TestIsOpen_FollowsDST(t *testing.T) {
	// 14:00 UTC is 10:00 EDT in July but 09:00 EST in January.
	summer := time.Date(2024, time.July, 10, 14, 0, 0, 0, time.UTC)
	winter := time.Date(2024, time.January, 10, 14, 0, 0, 0, time.UTC)
	if !IsOpen(summer) {
		t.Error("expected market open at 14:00 UTC in July")
	}
	if IsOpen(winter) {
		t.Error("expected market closed at 14:00 UTC in January")
	}
}

func TestNextOpen(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want time.Time
	}{
		{"before open same day", et(2024, time.March, 13, 7, 0), et(2024, time.March, 13, 9, 30)},
		{"during session", et(2024, time.March, 13, 11, 0), et(2024, time.March, 14, 9, 30)},
		{"friday evening", et(2024, time.March, 15, 18, 0), et(2024, time.March, 18, 9, 30)},
		{"saturday", et(2024, time.March, 16, 9, 0), et(2024, time.March, 18, 9, 30)},
	}
	for _, tt := range tests {
		if got := NextOpen(tt.t); !got.Equal(tt.want) {
			t.Errorf("%s: NextOpen = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestStatus(t *testing.T) {
	open := Status(et(2024, time.March, 13, 15, 0))
	if !strings.HasPrefix(open, "Market Open") || !strings.Contains(open, "1h0m") {
		t.Errorf("unexpected open status: %q", open)
	}
	closed := Status(et(2024, time.March, 16, 12, 0))
	if !strings.HasPrefix(closed, "Market Closed") || !strings.Contains(closed, "Mon 09:30") {
		t.Errorf("unexpected closed status: %q", closed)
	}
}

func TestTimeUntilClose(t *testing.T) {
	if d := TimeUntilClose(et(2024, time.March, 13, 15, 30)); d != 30*time.Minute {
		t.Errorf("expected 30m, got %s", d)
	}
	if d := TimeUntilClose(et(2024, time.March, 13, 17, 0)); d != 0 {
		t.Errorf("expected 0 after close, got %s", d)
	}
}
