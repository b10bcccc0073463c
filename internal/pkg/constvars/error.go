package constvars

// Validation messages, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"gt":            "must be greater than %s",
	"oneof":         "must be one of [%s]",
	"required_with": "is required when %s is present",
	"dive":          "is invalid",
}

var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"gt":            true,
	"oneof":         true,
	"required_with": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientTooManyRequests               = "too many requests, please slow down"

	ErrClientFetchAppointmentFailed  = "Failed to fetch appointment data."
	ErrClientFetchAppointmentError   = "Error fetching appointment data"
	ErrClientAppointmentDataMissing  = "Appointment data is missing"
	ErrClientGenerateLabReportFailed = "Failed to generate lab report"
	ErrClientSaveLabReportFailed     = "Failed to save lab report."
	ErrClientOpenLabReportFailed     = "Failed to open lab report"
	ErrClientMRNMissing              = "MRN is missing"
	ErrClientLabReportInProgress     = "Lab report generation is already in progress"
	ErrClientLabSessionBusy          = "Lab report is being updated, please try again"
	ErrClientResultKeyNotFound       = "No result recorded for this field"
	ErrClientInvalidReportTimestamp  = "Invalid lab report date & time"
	ErrClientUnknownSessionStore     = "unknown session store driver"
	ErrClientUnknownLabReportGateway = "unknown lab report gateway"
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevValidationFailed            = "validation failed"
	ErrDevURLParamValidationFailed    = "URL param %s validation failed"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevRateLimitExceeded           = "rate limit exceeded"
	ErrDevMissingRequestID            = "request id missing from context"
	ErrDevCreateHTTPRequest           = "failed to create HTTP request"
	ErrDevSendHTTPRequest             = "failed to send HTTP request"
	ErrDevDecodeResponse              = "failed to decode %s response"
	ErrDevClinicAPIRejected           = "clinic API rejected %s request with status %d"
	ErrDevAppointmentNotLoaded        = "appointment %s is not loaded"
	ErrDevComposeLabReport            = "failed to compose lab report"
	ErrDevRenderLabReportPage         = "failed to render lab report page %d"
	ErrDevEncodeLabReportPage         = "failed to encode lab report page %d"
	ErrDevAssembleLabReportPDF        = "failed to assemble lab report PDF"
	ErrDevGenerateQRCode              = "failed to generate QR code"
	ErrDevBuildMultipartBody          = "failed to build multipart body"
	ErrDevUploadLabReportRejected     = "lab report upload rejected"
	ErrDevLabReportLocked             = "lab report generation lock for %s is held"
	ErrDevLabSessionLocked            = "session lock for appointment %s was not acquired"
	ErrDevResultKeyNotFound           = "result %s not found"
	ErrDevMinioFailedToCreateObject   = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObject  = "failed to presign object in bucket %s"
	ErrDevInvalidStoredReportURL      = "stored report URL %q is not absolute"
	ErrDevRedisGetNoData              = "no data on redis with key %s"
	ErrDevRedisSetData                = "failed to set data on redis"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevRedisSetNX                  = "failed to set data on redis if absent"
	ErrDevRedisUnlock                 = "failed to release lock on redis"
	ErrDevUnknownSessionStoreDriver   = "unknown session store driver %s"
	ErrDevUnknownLabReportGatewayName = "unknown lab report gateway %s"
	ErrDevInvalidReportTimestamp      = "cannot parse report timestamp %s"
)
