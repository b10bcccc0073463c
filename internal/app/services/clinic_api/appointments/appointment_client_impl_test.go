package appointments

import (
	"context"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/metrics"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *appointmentClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newAppointmentClient(server.URL+"/", 5*time.Second, metrics.NewMetrics(prometheus.NewRegistry(), "test"), zap.NewNop())
}

func TestFindAppointmentByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/appointments/A1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"mrn":"M1","name":"Ali","age":7,"doctor":"paediatrics","labLocation":"InHouse","labs":["CBC (Complete Blood Count) Basic Hematology","LFTs"]}}`))
		})

		appointment, err := client.FindAppointmentByID(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, "M1", appointment.MRN)
		assert.Equal(t, "7", appointment.Age.String())
		assert.Equal(t, []string{"CBC (Complete Blood Count) Basic Hematology", "LFTs"}, appointment.Labs)
	})

	t.Run("Missing Data Is Empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"ok"}`))
		})

		appointment, err := client.FindAppointmentByID(ctx, "A1")
		require.NoError(t, err)
		assert.True(t, appointment.IsEmpty())
	})

	t.Run("Server Message Is Surfaced", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Appointment not found"}`))
		})

		_, err := client.FindAppointmentByID(ctx, "A404")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Appointment not found", customErr.ClientMessage)
	})

	t.Run("Rejection Without Message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`<html>oops</html>`))
		})

		_, err := client.FindAppointmentByID(ctx, "A1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Failed to fetch appointment data.", customErr.ClientMessage)
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.FindAppointmentByID(ctx, "A1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Error fetching appointment data", customErr.ClientMessage)
	})

	t.Run("Transport Failure", func(t *testing.T) {
		client := newAppointmentClient("http://127.0.0.1:1", time.Second, metrics.NewMetrics(prometheus.NewRegistry(), "test"), zap.NewNop())

		_, err := client.FindAppointmentByID(ctx, "A1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Error fetching appointment data", customErr.ClientMessage)
	})
}
