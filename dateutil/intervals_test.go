package dateutil

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestDaily(t *testing.T) {
	start := mustTime(t, "2024-01-01")
	end := mustTime(t, "2024-01-04")
	ivs := Daily(start, end)
	if len(ivs) != 3 {
		t.Fatalf("got %d intervals, want 3", len(ivs))
	}
	if !ivs[0].Start.Equal(start) {
		t.Errorf("first interval starts at %v, want %v", ivs[0].Start, start)
	}
	for _, iv := range ivs {
		if err := iv.Validate(); err != nil {
			t.Errorf("invalid interval: %v", err)
		}
	}
}

func TestDailyEmptyRange(t *testing.T) {
	day := mustTime(t, "2024-01-01")
	if ivs := Daily(day, day); len(ivs) != 0 {
		t.Errorf("got %d intervals for empty range, want 0", len(ivs))
	}
}

func TestWeekly(t *testing.T) {
	start := mustTime(t, "2024-01-01")
	end := mustTime(t, "2024-01-15")
	ivs := Weekly(start, end)
	if len(ivs) == 0 {
		t.Fatal("expected intervals")
	}
	if !ivs[0].Start.Equal(start) {
		t.Errorf("first interval starts at %v, want %v", ivs[0].Start, start)
	}
}
