package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Plain calendar dates.
		{"2024-01-02", New(2024, time.January, 2), false},
		{"2024-1-2", New(2024, time.January, 2), false},

		// Timestamps: time-of-day is stripped.
		{"2024-01-02 00:00:00", New(2024, time.January, 2), false},
		{"2024-01-02 16:00:00", New(2024, time.January, 2), false},

		// Timezone-suffixed timestamps, both separators.
		{"2024-01-02 00:00:00-05:00", New(2024, time.January, 2), false},
		{"2024-01-02T00:00:00+09:00", New(2024, time.January, 2), false},
		{"2024-01-02T00:00:00Z", New(2024, time.January, 2), false},

		// Surrounding whitespace.
		{"  2024-01-02  ", New(2024, time.January, 2), false},

		// Garbage.
		{"not-a-date", Date{}, true},
		{"", Date{}, true},
		{"2024-13-02", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a := New(2024, time.January, 2)
	b := New(2024, time.January, 3)

	if got := a.Compare(b); got != -1 {
		t.Errorf("Compare() = %d, want -1", got)
	}
	if got := b.Compare(a); got != 1 {
		t.Errorf("Compare() = %d, want 1", got)
	}
	if got := a.Compare(a); got != 0 {
		t.Errorf("Compare() = %d, want 0", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2024, time.May, 21)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"2024-05-21"` {
		t.Errorf("json.Marshal() = %s, want %q", data, `"2024-05-21"`)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
