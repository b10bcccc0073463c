package requests

type SetLabResults struct {
	Results map[string]string `json:"results" validate:"required,min=1,dive,keys,required,endkeys"`
}

// SetLabTimestamps carries the datetime-local values of the form. Empty fields
// are left untouched.
type SetLabTimestamps struct {
	CollectedAt string `json:"collected_at" validate:"required_without=ReportedAt"`
	ReportedAt  string `json:"reported_at" validate:"required_without=CollectedAt"`
}

// GenerateLabReport tunes a generation run. The HTTP handler always uploads;
// the CLI may skip the upload to only write the file locally.
type GenerateLabReport struct {
	AppointmentID string
	SkipUpload    bool
}
