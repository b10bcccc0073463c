package contracts

import (
	"context"
	"labreport-service/internal/app/models"
)

type AppointmentClient interface {
	FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
}
