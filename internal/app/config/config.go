package config

import (
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "Asia/Karachi"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			APIKey:                         utils.GetEnvString("APP_API_KEY", ""),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:        utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 60),
			SessionStoreDriver:             utils.GetEnvString("APP_SESSION_STORE_DRIVER", constvars.SessionStoreDriverMemory),
			SessionExpiredTimeInMinutes:    utils.GetEnvInt("APP_SESSION_EXPIRED_TIME_IN_MINUTES", 240),
			GenerationLockTimeoutInSeconds: utils.GetEnvInt("APP_GENERATION_LOCK_TIMEOUT_IN_SECONDS", 120),
			ReportGateway:                  utils.GetEnvString("APP_REPORT_GATEWAY", constvars.ReportGatewayClinicAPI),
			MetricsNamespace:               utils.GetEnvString("APP_METRICS_NAMESPACE", "labreport"),
		},
		ClinicAPI: AppClinicAPI{
			BaseUrl:                 utils.GetEnvString("CLINIC_API_BASE_URL", "http://localhost:5000/api"),
			RequestTimeoutInSeconds: utils.GetEnvInt("CLINIC_API_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		Minio: AppMinio{
			LabReportBucketName:                 utils.GetEnvString("APP_MINIO_LAB_REPORT_BUCKET_NAME", "lab-reports"),
			PreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		Report: AppReport{
			RasterScale:    utils.GetEnvFloat("APP_REPORT_RASTER_SCALE", 2),
			JPEGQuality:    utils.GetEnvInt("APP_REPORT_JPEG_QUALITY", 92),
			QRCodeSizeInPx: utils.GetEnvInt("APP_REPORT_QR_CODE_SIZE_IN_PX", 100),
		},
	}
}
