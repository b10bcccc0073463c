package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLongDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"First", time.Date(2026, time.October, 1, 9, 5, 0, 0, time.UTC), "October 1st, 2026 9:05 AM"},
		{"Second", time.Date(2026, time.March, 2, 13, 30, 0, 0, time.UTC), "March 2nd, 2026 1:30 PM"},
		{"Third", time.Date(2026, time.May, 23, 0, 0, 0, 0, time.UTC), "May 23rd, 2026 12:00 AM"},
		{"Teens", time.Date(2026, time.June, 12, 18, 45, 0, 0, time.UTC), "June 12th, 2026 6:45 PM"},
		{"Eleventh", time.Date(2026, time.June, 11, 18, 45, 0, 0, time.UTC), "June 11th, 2026 6:45 PM"},
		{"Thirty First", time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC), "December 31st, 2026 11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLongDateTime(tt.input))
		})
	}
}

func TestParseReportTimestamp(t *testing.T) {
	t.Run("Datetime Local Input", func(t *testing.T) {
		parsed, err := ParseReportTimestamp("2026-10-19T14:30")
		require.NoError(t, err)
		assert.Equal(t, 14, parsed.Hour())
		assert.Equal(t, 30, parsed.Minute())
	})

	t.Run("RFC3339", func(t *testing.T) {
		parsed, err := ParseReportTimestamp("2026-10-19T14:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.October, parsed.Month())
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseReportTimestamp("yesterday")
		assert.Error(t, err)
	})
}

func TestFormatReportTimestamp(t *testing.T) {
	value := time.Date(2026, time.October, 19, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19T09:05", FormatReportTimestamp(&value))
	assert.Equal(t, "", FormatReportTimestamp(nil))
	assert.Equal(t, "", FormatReportTimestamp(&time.Time{}))
}
