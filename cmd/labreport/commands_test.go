package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := catalogCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.NotEmpty(t, lines)
	assert.Contains(t, out.String(), "CBC")
	assert.Contains(t, out.String(), "outsourced")
}

func TestRequiredAppointmentFlag(t *testing.T) {
	tests := []struct {
		name string
		cmd  func() error
	}{
		{"Form", func() error { cmd := formCmd(); cmd.SetArgs([]string{}); return cmd.Execute() }},
		{"Generate", func() error { cmd := generateCmd(); cmd.SetArgs([]string{}); return cmd.Execute() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--appointment is required")
		})
	}
}

func TestReadResultsFile(t *testing.T) {
	t.Run("No File", func(t *testing.T) {
		results, err := readResultsFile("")
		require.NoError(t, err)
		assert.Nil(t, results)
	})

	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Hemoglobin":"12.5","ABO Group":"O"}`), 0o600))

		results, err := readResultsFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Hemoglobin": "12.5", "ABO Group": "O"}, results)
	})

	t.Run("Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.json")
		require.NoError(t, os.WriteFile(path, []byte(`["Hemoglobin"]`), 0o600))

		_, err := readResultsFile(path)
		assert.Error(t, err)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := readResultsFile(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestParseTimestampFlag(t *testing.T) {
	value, err := parseTimestampFlag("collected", "")
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = parseTimestampFlag("collected", "2026-10-19T09:30")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 9, value.Hour())

	_, err = parseTimestampFlag("reported", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--reported")
}
