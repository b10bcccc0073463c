package utils

import (
	"fmt"
	"strings"
	"time"
)

// ReportTimestampLayout is the datetime-local form layout.
const ReportTimestampLayout = "2006-01-02T15:04"

// Layouts accepted for operator-entered report timestamps. The last one is what a
// datetime-local input submits.
var reportTimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	ReportTimestampLayout,
}

// FormatLongDateTime renders t as "October 19th, 2026 3:04 PM".
func FormatLongDateTime(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d %s", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year(), t.Format("3:04 PM"))
}

func ParseReportTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range reportTimestampLayouts {
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatReportTimestamp renders value for a datetime-local input, or "" when unset.
func FormatReportTimestamp(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format(ReportTimestampLayout)
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
