package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_API_KEY_AUTH             ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "LABRPT_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	SessionStoreDriverMemory = "memory"
	SessionStoreDriverRedis  = "redis"

	ReportGatewayClinicAPI = "clinic_api"
	ReportGatewayMinio     = "minio"
)

const (
	LabSessionKeyPrefix       = "labreport:session:"
	LabGenerationLockPrefix   = "labreport:lock:"
	LabSessionLockPrefix      = "labreport:session-lock:"
	LabSessionAppointmentKey  = "appointment"
	LabSessionResultsKey      = "results"
	LabSessionCollectedAtKey  = "collected_at"
	LabSessionReportedAtKey   = "reported_at"
	LabReportFileNameFormat   = "%s.pdf"
	LabReportObjectNameFormat = "lab-reports/%s.pdf"
)

// Upstream clinic API paths, relative to CLINIC_API_BASE_URL.
const (
	ClinicAPIAppointmentByIDPath = "/appointments/%s"
	ClinicAPILabReportPath       = "/appointments/labReport"
	ClinicAPIOpenLabReportPath   = "/appointments/openLabReport/%s"

	ClinicAPIFormFieldMRN  = "mrn"
	ClinicAPIFormFieldFile = "file"
)
