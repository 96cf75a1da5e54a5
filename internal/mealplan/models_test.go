package mealplan

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	t.Run("ParseAndFormat", func(t *testing.T) {
		d, err := ParseDate("2026-03-10")
		if err != nil {
			t.Fatalf("Expected parse to succeed, got %v", err)
		}
		if d.String() != "2026-03-10" {
			t.Errorf("Expected 2026-03-10, got %s", d)
		}
	})

	t.Run("ParseRejectsOtherLayouts", func(t *testing.T) {
		for _, raw := range []string{"10.03.2026", "2026-3-10", "2026-03-10T00:00:00Z", ""} {
			if _, err := ParseDate(raw); err == nil {
				t.Errorf("Expected %q to be rejected", raw)
			}
		}
	})

	t.Run("DateOfDropsTime", func(t *testing.T) {
		d := DateOf(time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC))
		if d.String() != "2026-03-10" {
			t.Errorf("Expected the calendar date only, got %s", d)
		}
	})

	t.Run("After", func(t *testing.T) {
		earlier := NewDate(2026, time.March, 10)
		later := NewDate(2026, time.March, 11)
		if !later.After(earlier) || earlier.After(later) || earlier.After(earlier) {
			t.Error("Expected strict calendar ordering")
		}
	})

	t.Run("JSONRoundTrip", func(t *testing.T) {
		d := NewDate(2026, time.March, 10)
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("Expected marshal to succeed, got %v", err)
		}
		if string(data) != `"2026-03-10"` {
			t.Errorf("Expected quoted date string, got %s", data)
		}
		var back Date
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Expected unmarshal to succeed, got %v", err)
		}
		if back.String() != d.String() {
			t.Errorf("Expected round trip, got %s", back)
		}
	})
}
