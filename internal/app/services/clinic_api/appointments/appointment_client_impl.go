package appointments

import (
	"context"
	"fmt"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/models"
	"labreport-service/internal/app/services/clinic_api"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/metrics"
	"labreport-service/internal/pkg/utils"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const operationFindAppointment = "find_appointment"

var (
	appointmentClientInstance contracts.AppointmentClient
	onceAppointmentClient     sync.Once
)

type appointmentClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

func NewAppointmentClient(baseUrl string, timeout time.Duration, appMetrics *metrics.Metrics, logger *zap.Logger) contracts.AppointmentClient {
	onceAppointmentClient.Do(func() {
		appointmentClientInstance = newAppointmentClient(baseUrl, timeout, appMetrics, logger)
	})
	return appointmentClientInstance
}

func newAppointmentClient(baseUrl string, timeout time.Duration, appMetrics *metrics.Metrics, logger *zap.Logger) *appointmentClient {
	return &appointmentClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Metrics:    appMetrics,
		Log:        logger,
	}
}

func (c *appointmentClient) FindAppointmentByID(ctx context.Context, appointmentID string) (appointment *models.Appointment, err error) {
	requestID := utils.RequestIDFromContext(ctx)
	c.Log.Info("appointmentClient.FindAppointmentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	start := time.Now()
	defer func() {
		c.Metrics.ClinicAPIRequests.WithLabelValues(operationFindAppointment, metrics.Status(err)).Inc()
		c.Metrics.ClinicAPILatency.WithLabelValues(operationFindAppointment).Observe(time.Since(start).Seconds())
	}()

	requestURL := c.BaseUrl + fmt.Sprintf(constvars.ClinicAPIAppointmentByIDPath, url.PathEscape(appointmentID))
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, requestURL, nil)
	if err != nil {
		c.Log.Error("appointmentClient.FindAppointmentByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrLoadAppointment(exceptions.ErrCreateHTTPRequest(err))
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("appointmentClient.FindAppointmentByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrLoadAppointment(exceptions.ErrSendHTTPRequest(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := clinic_api.ErrorMessage(resp.Body)
		err = fmt.Errorf("clinic API responded with status %d", resp.StatusCode)
		c.Log.Error("appointmentClient.FindAppointmentByID clinic API rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingResponseKey, message),
		)
		return nil, exceptions.ErrLoadAppointmentRejected(err, message, resp.StatusCode)
	}

	envelope, err := clinic_api.DecodeEnvelope[*models.Appointment](resp.Body)
	if err != nil {
		c.Log.Error("appointmentClient.FindAppointmentByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrLoadAppointment(exceptions.ErrDecodeResponse(err, "appointment"))
	}

	c.Log.Info("appointmentClient.FindAppointmentByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Bool("empty", envelope.Data.IsEmpty()),
	)
	return envelope.Data, nil
}
