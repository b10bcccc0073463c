package labreports

import (
	"context"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/models"
	clinicLabReports "labreport-service/internal/app/services/clinic_api/labreports"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/dto/requests"
	"labreport-service/internal/pkg/dto/responses"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/metrics"
	"labreport-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	labReportUsecaseInstance contracts.LabReportUsecase
	onceLabReportUsecase     sync.Once
)

type labReportUsecase struct {
	Catalog               *models.LabCatalog
	Template              models.ReportTemplate
	LabSessionUsecase     contracts.LabSessionUsecase
	Exporter              contracts.LabReportExporter
	Gateway               contracts.LabReportGateway
	GatewayName           string
	LockerService         contracts.LockerService
	GenerationLockTimeout time.Duration
	ClinicAPIBaseUrl      string
	Metrics               *metrics.Metrics
	Log                   *zap.Logger
	now                   func() time.Time
}

type LabReportUsecaseConfig struct {
	Catalog               *models.LabCatalog
	Template              models.ReportTemplate
	GatewayName           string
	GenerationLockTimeout time.Duration
	ClinicAPIBaseUrl      string
}

func NewLabReportUsecase(
	cfg LabReportUsecaseConfig,
	labSessionUsecase contracts.LabSessionUsecase,
	exporter contracts.LabReportExporter,
	gateway contracts.LabReportGateway,
	lockerService contracts.LockerService,
	appMetrics *metrics.Metrics,
	logger *zap.Logger,
) contracts.LabReportUsecase {
	onceLabReportUsecase.Do(func() {
		labReportUsecaseInstance = newLabReportUsecase(cfg, labSessionUsecase, exporter, gateway, lockerService, appMetrics, logger)
	})
	return labReportUsecaseInstance
}

func newLabReportUsecase(
	cfg LabReportUsecaseConfig,
	labSessionUsecase contracts.LabSessionUsecase,
	exporter contracts.LabReportExporter,
	gateway contracts.LabReportGateway,
	lockerService contracts.LockerService,
	appMetrics *metrics.Metrics,
	logger *zap.Logger,
) *labReportUsecase {
	return &labReportUsecase{
		Catalog:               cfg.Catalog,
		Template:              cfg.Template,
		LabSessionUsecase:     labSessionUsecase,
		Exporter:              exporter,
		Gateway:               gateway,
		GatewayName:           cfg.GatewayName,
		LockerService:         lockerService,
		GenerationLockTimeout: cfg.GenerationLockTimeout,
		ClinicAPIBaseUrl:      cfg.ClinicAPIBaseUrl,
		Metrics:               appMetrics,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *labReportUsecase) GetForm(ctx context.Context, appointmentID string) (*responses.LabReportForm, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labReportUsecase.GetForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.LabSessionUsecase.LoadAppointment(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("labReportUsecase.GetForm error calling LabSessionUsecase.LoadAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.warnUnclassified(requestID, session.Appointment)
	return BuildForm(uc.Catalog, session), nil
}

func (uc *labReportUsecase) PreviewReport(ctx context.Context, appointmentID string) (*responses.LabReportPreview, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labReportUsecase.PreviewReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.LabSessionUsecase.GetSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	pages, err := uc.compose(session)
	if err != nil {
		uc.Log.Error("labReportUsecase.PreviewReport error composing report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.LabReportPreview{
		AppointmentID: appointmentID,
		FileName:      utils.GenerateLabReportFileName(session.Appointment.MRN),
		Pages:         pages,
	}, nil
}

// GenerateReport composes, rasterizes and uploads the report of a loaded
// session. Only one generation per MRN runs at a time.
func (uc *labReportUsecase) GenerateReport(ctx context.Context, request *requests.GenerateLabReport) (result *responses.GeneratedLabReport, err error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labReportUsecase.GenerateReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.Bool("skip_upload", request.SkipUpload),
	)

	start := time.Now()
	defer func() {
		uc.Metrics.LabReportsGenerated.WithLabelValues(metrics.Status(err)).Inc()
		uc.Metrics.LabReportGenerationLatency.Observe(time.Since(start).Seconds())
	}()

	session, err := uc.LabSessionUsecase.GetSession(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	mrn := session.Appointment.MRN

	lockKey := constvars.LabGenerationLockPrefix + mrn
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.GenerationLockTimeout)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrLabReportInProgress(nil, mrn)
	}
	defer func() {
		unlockErr := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)
		if unlockErr != nil {
			uc.Log.Warn("labReportUsecase.GenerateReport error releasing generation lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingMRNKey, mrn),
				zap.Error(unlockErr),
			)
		}
	}()

	pages, err := uc.compose(session)
	if err != nil {
		uc.Log.Error("labReportUsecase.GenerateReport error composing report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	artifact, err := uc.Exporter.Export(ctx, pages)
	if err != nil {
		uc.Log.Error("labReportUsecase.GenerateReport error calling Exporter.Export",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingPageCountKey, len(pages)),
			zap.Error(err),
		)
		return nil, err
	}
	artifact.FileName = utils.GenerateLabReportFileName(mrn)
	uc.Metrics.LabReportPages.Observe(float64(len(pages)))
	uc.Metrics.LabReportSize.Observe(float64(artifact.Size()))

	result = &responses.GeneratedLabReport{MRN: mrn, Artifact: artifact}
	if request.SkipUpload {
		return result, nil
	}

	ack, err := uc.Gateway.UploadReport(ctx, mrn, artifact)
	uc.Metrics.LabReportUploads.WithLabelValues(uc.GatewayName, metrics.Status(err)).Inc()
	if err != nil {
		uc.Log.Error("labReportUsecase.GenerateReport error calling Gateway.UploadReport",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayKey, uc.GatewayName),
			zap.Error(err),
		)
		return nil, err
	}

	result.Ack = ack
	result.Message = constvars.GenerateLabReportSuccessMessage
	uc.Log.Info("labReportUsecase.GenerateReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
		zap.Int(constvars.LoggingPageCountKey, len(pages)),
		zap.Int(constvars.LoggingArtifactSizeKey, artifact.Size()),
	)
	return result, nil
}

func (uc *labReportUsecase) OpenStoredReport(ctx context.Context, mrn string) (string, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labReportUsecase.OpenStoredReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
	)

	if mrn == "" {
		return "", exceptions.ErrMissingMRN(nil)
	}

	reportURL, err := uc.Gateway.StoredReportURL(ctx, mrn)
	if err != nil {
		uc.Log.Error("labReportUsecase.OpenStoredReport error calling Gateway.StoredReportURL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}
	return reportURL, nil
}

func (uc *labReportUsecase) compose(session *models.LabSession) ([]models.ReportPage, error) {
	return ComposeReport(uc.Catalog, uc.Template, ReportInput{
		Appointment: session.Appointment,
		Results:     session.Results,
		CollectedAt: session.CollectedAt,
		ReportedAt:  session.ReportedAt,
		QRCodeURL:   clinicLabReports.StoredReportURL(uc.ClinicAPIBaseUrl, session.Appointment.MRN),
	}, uc.now())
}

func (uc *labReportUsecase) warnUnclassified(requestID string, appointment *models.Appointment) {
	for _, name := range UnclassifiedTests(uc.Catalog, appointment.Labs) {
		uc.Log.Warn("labReportUsecase test is in neither catalog list and is left off the report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMRNKey, appointment.MRN),
			zap.String(constvars.LoggingTestNameKey, name),
		)
	}
}
