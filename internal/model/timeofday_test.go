package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "10:30", want: "10:30:00"},
		{in: "10:30:45", want: "10:30:45"},
		{in: "00:00", want: "00:00:00"},
		{in: "23:59:59", want: "23:59:59"},
		{in: "25:00", wantErr: true},
		{in: "half past ten", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeOfDay(%q) = %v; want error", tt.in, tod)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) error: %v", tt.in, err)
			}
			if tod.String() != tt.want {
				t.Errorf("String() = %q; want %q", tod.String(), tt.want)
			}
		})
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	if err := tod.Scan(time.Date(2026, time.March, 11, 14, 45, 30, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if tod.String() != "14:45:30" {
		t.Errorf("String() = %q; want 14:45:30", tod.String())
	}

	if err := tod.Scan("09:15:00"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if tod.String() != "09:15:00" {
		t.Errorf("String() = %q; want 09:15:00", tod.String())
	}

	if err := tod.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	tod, err := ParseTimeOfDay("18:05")
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(tod)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"18:05:00"` {
		t.Errorf("marshal = %s; want %q", b, "18:05:00")
	}

	var back TimeOfDay
	if err := json.Unmarshal([]byte(`"18:05"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.SinceMidnight() != 18*time.Hour+5*time.Minute {
		t.Errorf("SinceMidnight() = %v; want 18h5m", back.SinceMidnight())
	}
}
