package contracts

import (
	"context"
	"labreport-service/internal/app/models"
	"time"
)

type LabSessionUsecase interface {
	LoadAppointment(ctx context.Context, appointmentID string) (*models.LabSession, error)
	GetSession(ctx context.Context, appointmentID string) (*models.LabSession, error)
	SetResult(ctx context.Context, appointmentID, key, value string) error
	SetResults(ctx context.Context, appointmentID string, results map[string]string) error
	GetResult(ctx context.Context, appointmentID, key string) (string, error)
	SetTimestamps(ctx context.Context, appointmentID string, collectedAt, reportedAt *time.Time) (*models.LabSession, error)
}
