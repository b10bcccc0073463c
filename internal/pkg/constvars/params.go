package constvars

const (
	URLParamAppointmentID = "appointment_id"
	URLParamMRN           = "mrn"
)

const (
	QueryParamResultKey = "key"
)
