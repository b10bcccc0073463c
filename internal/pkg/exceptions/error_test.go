package exceptions

import (
	"errors"
	"labreport-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadLabReportRejected(t *testing.T) {
	t.Run("Server Message Is The Client Message", func(t *testing.T) {
		err := ErrUploadLabReportRejected(errors.New("success=false"), "disk full")

		assert.Equal(t, "disk full", err.ClientMessage)
		assert.Equal(t, constvars.StatusBadGateway, err.StatusCode)
	})

	t.Run("Generic Fallback", func(t *testing.T) {
		err := ErrUploadLabReportRejected(nil, "")

		assert.Equal(t, constvars.ErrClientSaveLabReportFailed, err.ClientMessage)
		assert.Equal(t, constvars.ErrDevUploadLabReportRejected, err.DevMessage)
	})
}

func TestLoadAppointmentRejected(t *testing.T) {
	err := ErrLoadAppointmentRejected(nil, "", 404)
	assert.Equal(t, constvars.ErrClientFetchAppointmentFailed, err.ClientMessage)

	err = ErrLoadAppointmentRejected(nil, "Appointment not found", 404)
	assert.Equal(t, "Appointment not found", err.ClientMessage)
}

func TestCustomErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrSendHTTPRequest(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.DevMessage, "connection refused")
	assert.Contains(t, err.Location.FunctionName, "TestCustomErrorUnwrap")
}
