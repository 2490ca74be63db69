package usecase

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive range of calendar days in UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

var dateLayouts = []string{"2006-01-02", "20060102"}

// ParseDate accepts YYYY-MM-DD or YYYYMMDD.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD or YYYYMMDD", ErrInvalidInput, value)
}

func ParseDateRange(startDate, endDate string) (DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return DateRange{}, fmt.Errorf("start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return DateRange{}, fmt.Errorf("end date: %w", err)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, endDate, startDate)
	}
	return DateRange{Start: start, End: end}, nil
}
