package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingURLKey            = "url"

	LoggingAppointmentIDKey = "appointment_id"
	LoggingMRNKey           = "mrn"
	LoggingResultKey        = "result_key"
	LoggingResultCountKey   = "result_count"
	LoggingTestNameKey      = "test_name"
	LoggingPageCountKey     = "page_count"
	LoggingPageIndexKey     = "page_index"
	LoggingSectionCountKey  = "section_count"
	LoggingArtifactSizeKey  = "artifact_size"
	LoggingBucketNameKey    = "bucket_name"
	LoggingObjectNameKey    = "object_name"
	LoggingRedisKey         = "redis_key"
	LoggingLockValueKey     = "lock_value"
	LoggingLockExpiration   = "lock_expiration"
	LoggingGatewayKey       = "gateway"
	LoggingStoreDriverKey   = "store_driver"
)
