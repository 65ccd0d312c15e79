// Package datetime provides month arithmetic for labelling chart points.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/business-calculator/pkg/constants"
)

const (
	// DateTimeLayout is the month format accepted in config files and used for
	// chart labels.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthLabels returns count consecutive month labels, the first being start.
func MonthLabels(start string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	if _, err := time.Parse(DateTimeLayout, start); err != nil {
		return nil, fmt.Errorf("invalid month %q, expected format %s: %w", start, DateTimeLayout, err)
	}

	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		label, err := OffsetDate(start, DateTimeLayout, i)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}
