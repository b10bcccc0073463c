package application

import (
	"context"
	"errors"
	"labreport-service/internal/app/config"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/drivers/database"
	"labreport-service/internal/app/drivers/storage"
	"labreport-service/internal/app/models"
	"labreport-service/internal/app/services/clinic_api/appointments"
	clinicLabReports "labreport-service/internal/app/services/clinic_api/labreports"
	"labreport-service/internal/app/services/core/labreports"
	"labreport-service/internal/app/services/core/labsessions"
	"labreport-service/internal/app/services/shared/cache"
	"labreport-service/internal/app/services/shared/locker"
	"labreport-service/internal/app/services/shared/rasterizer"
	"labreport-service/internal/app/services/shared/redis"
	sharedStorage "labreport-service/internal/app/services/shared/storage"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/metrics"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	memoryStoreCleanupInterval = 10 * time.Minute
	// A session lock outlives the clinic API call made while holding it.
	sessionLockMargin = 5 * time.Second
)

var (
	errUnknownSessionStoreDriver = errors.New("unsupported session store driver")
	errUnknownLabReportGateway   = errors.New("unsupported lab report gateway")
)

// Application holds the wired use cases shared by the HTTP server and the CLI.
type Application struct {
	Metrics           *metrics.Metrics
	LabSessionUsecase contracts.LabSessionUsecase
	LabReportUsecase  contracts.LabReportUsecase
	Exporter          *rasterizer.LabReportExporter
	Gateway           contracts.LabReportGateway
}

// NewApplication connects the configured drivers and wires every use case.
// Opened clients are stored on b so that b.Shutdown can close them.
func NewApplication(ctx context.Context, b *config.Bootstrap) (*Application, error) {
	if b.Registry == nil {
		b.Registry = prometheus.NewRegistry()
	}
	appMetrics := metrics.NewMetrics(b.Registry, b.InternalConfig.App.MetricsNamespace)

	keyValueRepository, err := newKeyValueRepository(b)
	if err != nil {
		return nil, err
	}

	gateway, err := newLabReportGateway(ctx, b, appMetrics)
	if err != nil {
		return nil, err
	}

	clinicAPITimeout := time.Duration(b.InternalConfig.ClinicAPI.RequestTimeoutInSeconds) * time.Second
	appointmentClient := appointments.NewAppointmentClient(b.InternalConfig.ClinicAPI.BaseUrl, clinicAPITimeout, appMetrics, b.Logger)

	lockerService := locker.NewLockService(keyValueRepository, b.Logger)

	// In memory mode the usecase's own keyed mutex already covers every writer.
	var sessionLocker contracts.LockerService
	if b.InternalConfig.App.SessionStoreDriver == constvars.SessionStoreDriverRedis {
		sessionLocker = lockerService
	}
	labSessionUsecase := labsessions.NewLabSessionUsecase(
		labsessions.LabSessionUsecaseConfig{
			SessionTTL:  time.Duration(b.InternalConfig.App.SessionExpiredTimeInMinutes) * time.Minute,
			LockTimeout: clinicAPITimeout + sessionLockMargin,
		},
		appointmentClient,
		keyValueRepository,
		sessionLocker,
		b.Logger,
	)

	exporter := rasterizer.NewLabReportExporter(rasterizer.Options{
		Scale:       b.InternalConfig.Report.RasterScale,
		JPEGQuality: b.InternalConfig.Report.JPEGQuality,
		QRCodeSize:  b.InternalConfig.Report.QRCodeSizeInPx,
	}, b.Logger)

	labReportUsecase := labreports.NewLabReportUsecase(
		labreports.LabReportUsecaseConfig{
			Catalog:               models.DefaultLabCatalog(),
			Template:              models.DefaultReportTemplate(),
			GatewayName:           b.InternalConfig.App.ReportGateway,
			GenerationLockTimeout: time.Duration(b.InternalConfig.App.GenerationLockTimeoutInSeconds) * time.Second,
			ClinicAPIBaseUrl:      b.InternalConfig.ClinicAPI.BaseUrl,
		},
		labSessionUsecase,
		exporter,
		gateway,
		lockerService,
		appMetrics,
		b.Logger,
	)

	return &Application{
		Metrics:           appMetrics,
		LabSessionUsecase: labSessionUsecase,
		LabReportUsecase:  labReportUsecase,
		Exporter:          exporter,
		Gateway:           gateway,
	}, nil
}

func newKeyValueRepository(b *config.Bootstrap) (contracts.KeyValueRepository, error) {
	driver := b.InternalConfig.App.SessionStoreDriver
	b.Logger.Info("Initializing session store", zap.String(constvars.LoggingStoreDriverKey, driver))

	switch driver {
	case constvars.SessionStoreDriverMemory, "":
		sessionTTL := time.Duration(b.InternalConfig.App.SessionExpiredTimeInMinutes) * time.Minute
		return cache.NewCacheRepository(sessionTTL, memoryStoreCleanupInterval), nil
	case constvars.SessionStoreDriverRedis:
		client, err := database.NewRedisClient(b.DriverConfig, b.Logger)
		if err != nil {
			return nil, err
		}
		b.Redis = client
		return redis.NewRedisRepository(client), nil
	default:
		return nil, exceptions.ErrUnknownSessionStoreDriver(errUnknownSessionStoreDriver, driver)
	}
}

func newLabReportGateway(ctx context.Context, b *config.Bootstrap, appMetrics *metrics.Metrics) (contracts.LabReportGateway, error) {
	gatewayName := b.InternalConfig.App.ReportGateway
	b.Logger.Info("Initializing lab report gateway", zap.String(constvars.LoggingGatewayKey, gatewayName))

	switch gatewayName {
	case constvars.ReportGatewayClinicAPI, "":
		timeout := time.Duration(b.InternalConfig.ClinicAPI.RequestTimeoutInSeconds) * time.Second
		return clinicLabReports.NewLabReportGateway(b.InternalConfig.ClinicAPI.BaseUrl, timeout, appMetrics, b.Logger), nil
	case constvars.ReportGatewayMinio:
		bucketName := b.InternalConfig.Minio.LabReportBucketName
		client, err := storage.NewMinio(ctx, b.DriverConfig, bucketName, b.Logger)
		if err != nil {
			return nil, err
		}
		b.Minio = client
		urlExpiry := time.Duration(b.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour
		return sharedStorage.NewMinioLabReportGateway(sharedStorage.NewMinioStorage(client), bucketName, urlExpiry, b.Logger), nil
	default:
		return nil, exceptions.ErrUnknownLabReportGateway(errUnknownLabReportGateway, gatewayName)
	}
}
