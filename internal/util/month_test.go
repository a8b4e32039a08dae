package util

import (
	"testing"
	"time"
)

func TestValidMonth(t *testing.T) {
	valid := []string{"2025-01", "2024-12", "1999-06"}
	for _, m := range valid {
		if !ValidMonth(m) {
			t.Errorf("Expected %q to be a valid month", m)
		}
	}

	invalid := []string{"", "2025", "2025-13", "2025-1", "2025-01-01", "Jan 2025"}
	for _, m := range invalid {
		if ValidMonth(m) {
			t.Errorf("Expected %q to be an invalid month", m)
		}
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2025-02-28") {
		t.Error("Expected 2025-02-28 to be valid")
	}
	if ValidDate("2025-02-30") {
		t.Error("Expected 2025-02-30 to be invalid")
	}
	if ValidDate("2025-02") {
		t.Error("Expected 2025-02 to be invalid")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	days, err := DaysUntil("2025-06-20", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if days != 10 {
		t.Errorf("Expected 10 days, got %d", days)
	}

	days, err = DaysUntil("2025-06-10", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if days != 0 {
		t.Errorf("Expected 0 days for today, got %d", days)
	}

	days, err = DaysUntil("2025-06-01", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if days != -9 {
		t.Errorf("Expected -9 days for past date, got %d", days)
	}

	if _, err := DaysUntil("not-a-date", now); err == nil {
		t.Error("Expected error for malformed date")
	}
}
