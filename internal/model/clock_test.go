package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{in: "18:30:15", want: ClockTime{Hour: 18, Minute: 30, Second: 15}},
		{in: "18:30", want: ClockTime{Hour: 18, Minute: 30}},
		{in: "00:00", want: ClockTime{}},
		{in: "23:59:59", want: ClockTime{Hour: 23, Minute: 59, Second: 59}},
		{in: "24:00", wantErr: true},
		{in: "7pm", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeJSONRoundTrip(t *testing.T) {
	original := ClockTime{Hour: 9, Minute: 5, Second: 30}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"09:05:30"` {
		t.Errorf("marshal = %s, want \"09:05:30\"", data)
	}

	var decoded ClockTime
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %v, want %v", decoded, original)
	}
}

func TestClockTimeScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want ClockTime
	}{
		{"time value", time.Date(0, 1, 1, 14, 20, 5, 0, time.UTC), ClockTime{Hour: 14, Minute: 20, Second: 5}},
		{"string", "14:20:05", ClockTime{Hour: 14, Minute: 20, Second: 5}},
		{"bytes", []byte("14:20:05"), ClockTime{Hour: 14, Minute: 20, Second: 5}},
		{"fractional seconds trimmed", "14:20:05.123456", ClockTime{Hour: 14, Minute: 20, Second: 5}},
		{"nil resets", nil, ClockTime{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ClockTime
			if err := c.Scan(tt.src); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if c != tt.want {
				t.Errorf("scan = %v, want %v", c, tt.want)
			}
		})
	}

	var c ClockTime
	if err := c.Scan(42); err == nil {
		t.Error("scanning an int should fail")
	}
}

func TestClockTimeBefore(t *testing.T) {
	early := ClockTime{Hour: 8, Minute: 30}
	late := ClockTime{Hour: 20, Minute: 15}

	if !early.Before(late) {
		t.Error("08:30 must sort before 20:15")
	}
	if late.Before(early) {
		t.Error("20:15 must not sort before 08:30")
	}
	if early.Before(early) {
		t.Error("a time must not sort before itself")
	}
}

func TestNullClockTimeJSON(t *testing.T) {
	var null NullClockTime

	data, err := json.Marshal(null)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("marshal = %s, want null", data)
	}

	var decoded NullClockTime
	if err := json.Unmarshal([]byte("null"), &decoded); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if decoded.Valid {
		t.Error("null must decode as invalid")
	}

	if err := json.Unmarshal([]byte(`"10:00:00"`), &decoded); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !decoded.Valid || decoded.ClockTime != (ClockTime{Hour: 10}) {
		t.Errorf("decoded = %+v, want valid 10:00:00", decoded)
	}
}

func TestNullClockTimeValueAndScan(t *testing.T) {
	var null NullClockTime
	v, err := null.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != nil {
		t.Errorf("null value = %v, want nil", v)
	}

	var scanned NullClockTime
	if err := scanned.Scan("06:45:00"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !scanned.Valid || scanned.ClockTime != (ClockTime{Hour: 6, Minute: 45}) {
		t.Errorf("scanned = %+v, want valid 06:45:00", scanned)
	}

	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if scanned.Valid {
		t.Error("scanning nil must reset validity")
	}
}
