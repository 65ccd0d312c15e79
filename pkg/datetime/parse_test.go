package datetime

import (
	"testing"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "2025-01",
			expected: "2025-01",
		},
		{
			name:     "Another valid date",
			layout:   DateTimeLayout,
			dateStr:  "2030-12",
			expected: "2030-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{name: "Next month", date: "2025-01", months: 1, expected: "2025-02"},
		{name: "Cross year boundary forward", date: "2025-06", months: 8, expected: "2026-02"},
		{name: "Cross year boundary backward", date: "2025-06", months: -8, expected: "2024-10"},
		{name: "Zero months", date: "2025-06", months: 0, expected: "2025-06"},
		{name: "Invalid date", date: "June 2025", months: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("OffsetDate() error = %v", err)
				return
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestMonthLabels(t *testing.T) {
	labels, err := MonthLabels("2025-11", 4)
	if err != nil {
		t.Fatalf("MonthLabels() error = %v", err)
	}

	expected := []string{"2025-11", "2025-12", "2026-01", "2026-02"}
	if len(labels) != len(expected) {
		t.Fatalf("expected %d labels, got %d", len(expected), len(labels))
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("label %d = %s, expected %s", i, labels[i], expected[i])
		}
	}
}

func TestMonthLabelsInvalid(t *testing.T) {
	if _, err := MonthLabels("2025/11", 12); err == nil {
		t.Errorf("MonthLabels() expected error for malformed month")
	}

	labels, err := MonthLabels("garbage", 0)
	if err != nil || labels != nil {
		t.Errorf("MonthLabels() with zero count = %v, %v; expected nil, nil", labels, err)
	}
}
