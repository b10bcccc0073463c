package responses

import "labreport-service/internal/app/models"

type AppointmentSummary struct {
	MRN         string `json:"mrn"`
	Status      string `json:"status"`
	Name        string `json:"name"`
	Age         string `json:"age"`
	Sex         string `json:"sex"`
	CNIC        string `json:"cnic"`
	Doctor      string `json:"doctor"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	LabLocation string `json:"lab_location"`
}

// LabReportForm describes the interactive entry form of one appointment.
type LabReportForm struct {
	AppointmentID string             `json:"appointment_id"`
	Summary       AppointmentSummary `json:"summary"`
	Tests         []LabFormEntry     `json:"tests"`
	EmptyMessage  string             `json:"empty_message,omitempty"`
	LabCollection string             `json:"lab_collection"`
	CanViewReport bool               `json:"can_view_report"`
	CollectedAt   string             `json:"collected_at,omitempty"`
	ReportedAt    string             `json:"reported_at,omitempty"`
}

type LabFormEntry struct {
	Name     string              `json:"name"`
	Category models.TestCategory `json:"category"`
	Kind     models.FieldKind    `json:"kind"`
	Editable bool                `json:"editable"`
	Fields   []LabFormField      `json:"fields,omitempty"`
}

type LabFormField struct {
	models.ResultField
	Value string `json:"value"`
}

type LabResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type LabTimestamps struct {
	CollectedAt string `json:"collected_at,omitempty"`
	ReportedAt  string `json:"reported_at,omitempty"`
}

type LabReportPreview struct {
	AppointmentID string              `json:"appointment_id"`
	FileName      string              `json:"file_name"`
	Pages         []models.ReportPage `json:"pages"`
}

// GeneratedLabReport is what a generation run hands back to its caller.
type GeneratedLabReport struct {
	MRN      string
	Artifact *models.ReportArtifact
	Ack      *models.UploadAck
	Message  string
}
