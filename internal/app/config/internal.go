package config

type InternalConfig struct {
	App       App          `mapstructure:"app"`
	ClinicAPI AppClinicAPI `mapstructure:"clinic_api"`
	Minio     AppMinio     `mapstructure:"minio"`
	Report    AppReport    `mapstructure:"report"`
}

type App struct {
	Env                            string `mapstructure:"env"`
	Port                           string `mapstructure:"port"`
	Version                        string `mapstructure:"version"`
	Timezone                       string `mapstructure:"timezone"`
	EndpointPrefix                 string `mapstructure:"endpoint_prefix"`
	APIKey                         string `mapstructure:"api_key"`
	MaxRequests                    int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds       int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds        int    `mapstructure:"request_timeout_in_seconds"`
	SessionStoreDriver             string `mapstructure:"session_store_driver"`
	SessionExpiredTimeInMinutes    int    `mapstructure:"session_expired_time_in_minutes"`
	GenerationLockTimeoutInSeconds int    `mapstructure:"generation_lock_timeout_in_seconds"`
	ReportGateway                  string `mapstructure:"report_gateway"`
	MetricsNamespace               string `mapstructure:"metrics_namespace"`
}

type AppClinicAPI struct {
	BaseUrl                 string `mapstructure:"base_url"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
}

type AppMinio struct {
	LabReportBucketName                 string `mapstructure:"lab_report_bucket_name"`
	PreSignedUrlObjectExpiryTimeInHours int    `mapstructure:"pre_signed_url_object_expiry_time_in_hours"`
}

// AppReport controls the rasterized page footprint.
type AppReport struct {
	RasterScale    float64 `mapstructure:"raster_scale"`
	JPEGQuality    int     `mapstructure:"jpeg_quality"`
	QRCodeSizeInPx int     `mapstructure:"qr_code_size_in_px"`
}
