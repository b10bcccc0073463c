package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetLabReportFormSuccessMessage  = "lab report form loaded successfully"
	SetLabResultsSuccessMessage     = "lab results saved successfully"
	GetLabResultSuccessMessage      = "lab result retrieved successfully"
	SetLabTimestampsSuccessMessage  = "lab report date & time saved successfully"
	PreviewLabReportSuccessMessage  = "lab report preview composed successfully"
	GenerateLabReportSuccessMessage = "Lab Report saved on server successfully!"
	HealthCheckSuccessMessage       = "service is healthy"
)
