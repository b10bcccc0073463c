package contracts

import (
	"context"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/dto/requests"
	"labreport-service/internal/pkg/dto/responses"
)

type LabReportUsecase interface {
	GetForm(ctx context.Context, appointmentID string) (*responses.LabReportForm, error)
	PreviewReport(ctx context.Context, appointmentID string) (*responses.LabReportPreview, error)
	GenerateReport(ctx context.Context, request *requests.GenerateLabReport) (*responses.GeneratedLabReport, error)
	OpenStoredReport(ctx context.Context, mrn string) (string, error)
}

// LabReportGateway stores generated reports and resolves where they can be viewed.
type LabReportGateway interface {
	UploadReport(ctx context.Context, mrn string, artifact *models.ReportArtifact) (*models.UploadAck, error)
	StoredReportURL(ctx context.Context, mrn string) (string, error)
}

type LabReportExporter interface {
	Export(ctx context.Context, pages []models.ReportPage) (*models.ReportArtifact, error)
}
