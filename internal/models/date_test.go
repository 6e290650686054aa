package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewDate_TruncatesTimeOfDay(t *testing.T) {
	d := NewDate(time.Date(2023, 1, 1, 23, 59, 58, 0, time.UTC))
	if d.String() != "2023-01-01" {
		t.Errorf("got %s, want 2023-01-01", d)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2023-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"2023-01-01"` {
		t.Errorf("got %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip mismatch: %s != %s", back, d)
	}
}

func TestDate_UnmarshalRejectsBadInput(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"yesterday"`), &d); err == nil {
		t.Error("expected error for non-date string")
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Error("expected error for number")
	}
}

func TestDate_ScanFromTime(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, 5, 4, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d.String() != "2023-05-04" {
		t.Errorf("got %s", d)
	}
}
