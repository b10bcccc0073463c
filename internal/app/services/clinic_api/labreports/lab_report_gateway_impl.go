package labreports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/models"
	"labreport-service/internal/app/services/clinic_api"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/metrics"
	"labreport-service/internal/pkg/utils"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const operationUploadLabReport = "upload_lab_report"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

var (
	labReportGatewayInstance contracts.LabReportGateway
	onceLabReportGateway     sync.Once
)

// labReportGateway hands generated reports to the clinic API, which stores
// them and serves them back under the open lab report path.
type labReportGateway struct {
	BaseUrl    string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

func NewLabReportGateway(baseUrl string, timeout time.Duration, appMetrics *metrics.Metrics, logger *zap.Logger) contracts.LabReportGateway {
	onceLabReportGateway.Do(func() {
		labReportGatewayInstance = newLabReportGateway(baseUrl, timeout, appMetrics, logger)
	})
	return labReportGatewayInstance
}

func newLabReportGateway(baseUrl string, timeout time.Duration, appMetrics *metrics.Metrics, logger *zap.Logger) *labReportGateway {
	return &labReportGateway{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Metrics:    appMetrics,
		Log:        logger,
	}
}

func (g *labReportGateway) UploadReport(ctx context.Context, mrn string, artifact *models.ReportArtifact) (ack *models.UploadAck, err error) {
	requestID := utils.RequestIDFromContext(ctx)
	g.Log.Info("labReportGateway.UploadReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
		zap.Int(constvars.LoggingArtifactSizeKey, artifact.Size()),
	)

	start := time.Now()
	defer func() {
		g.Metrics.ClinicAPIRequests.WithLabelValues(operationUploadLabReport, metrics.Status(err)).Inc()
		g.Metrics.ClinicAPILatency.WithLabelValues(operationUploadLabReport).Observe(time.Since(start).Seconds())
	}()

	body, contentType, err := buildUploadBody(mrn, artifact)
	if err != nil {
		g.Log.Error("labReportGateway.UploadReport error building multipart body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBuildMultipartBody(err)
	}

	requestURL := g.BaseUrl + constvars.ClinicAPILabReportPath
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, requestURL, body)
	if err != nil {
		g.Log.Error("labReportGateway.UploadReport error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrUploadLabReportRejected(exceptions.ErrCreateHTTPRequest(err), "")
	}
	req.Header.Set(constvars.HeaderContentType, contentType)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		g.Log.Error("labReportGateway.UploadReport error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrUploadLabReportRejected(exceptions.ErrSendHTTPRequest(err), "")
	}
	defer resp.Body.Close()

	envelope, decodeErr := clinic_api.DecodeEnvelope[any](resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if decodeErr == nil {
			message = envelope.Message
		}
		err = fmt.Errorf("clinic API responded with status %d", resp.StatusCode)
		g.Log.Error("labReportGateway.UploadReport clinic API rejected upload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingResponseKey, message),
		)
		return nil, exceptions.ErrUploadLabReportRejected(err, message)
	}
	if decodeErr != nil {
		g.Log.Error("labReportGateway.UploadReport error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(decodeErr),
		)
		return nil, exceptions.ErrUploadLabReportRejected(exceptions.ErrDecodeResponse(decodeErr, "lab report upload"), "")
	}
	if envelope.Success == nil || !*envelope.Success {
		err = errors.New("clinic API did not confirm the upload")
		g.Log.Error("labReportGateway.UploadReport upload not confirmed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseKey, envelope.Message),
		)
		return nil, exceptions.ErrUploadLabReportRejected(err, envelope.Message)
	}

	g.Log.Info("labReportGateway.UploadReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
	)
	return &models.UploadAck{Success: true, Message: envelope.Message}, nil
}

// StoredReportURL never calls the clinic API; the URL is opened by the viewer.
func (g *labReportGateway) StoredReportURL(ctx context.Context, mrn string) (string, error) {
	requestID := utils.RequestIDFromContext(ctx)
	g.Log.Info("labReportGateway.StoredReportURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
	)

	if mrn == "" {
		return "", exceptions.ErrMissingMRN(nil)
	}

	reportURL := StoredReportURL(g.BaseUrl, mrn)
	parsed, err := url.Parse(reportURL)
	if err == nil && (parsed.Scheme == "" || parsed.Host == "") {
		err = errors.New("missing scheme or host")
	}
	if err != nil {
		g.Log.Error("labReportGateway.StoredReportURL error building report URL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrOpenLabReport(err, reportURL)
	}
	return reportURL, nil
}

// StoredReportURL is also the payload of the QR code printed on every page.
func StoredReportURL(baseUrl, mrn string) string {
	return strings.TrimRight(baseUrl, "/") + fmt.Sprintf(constvars.ClinicAPIOpenLabReportPath, url.PathEscape(mrn))
}

func buildUploadBody(mrn string, artifact *models.ReportArtifact) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	err := writer.WriteField(constvars.ClinicAPIFormFieldMRN, mrn)
	if err != nil {
		return nil, "", err
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set(constvars.HeaderContentDisposition, fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		constvars.ClinicAPIFormFieldFile, quoteEscaper.Replace(utils.GenerateLabReportFileName(mrn))))
	partHeader.Set(constvars.HeaderContentType, constvars.MIMEApplicationPDF)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, "", err
	}
	_, err = part.Write(artifact.Content)
	if err != nil {
		return nil, "", err
	}

	err = writer.Close()
	if err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
