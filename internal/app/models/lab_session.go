package models

import "time"

// LabSession is the state of one report-entry session, keyed by appointment id.
type LabSession struct {
	AppointmentID string       `json:"appointment_id"`
	Appointment   *Appointment `json:"appointment,omitempty"`
	Results       ResultStore  `json:"results"`
	CollectedAt   *time.Time   `json:"collected_at,omitempty"`
	ReportedAt    *time.Time   `json:"reported_at,omitempty"`
}

func NewLabSession(appointmentID string) *LabSession {
	return &LabSession{
		AppointmentID: appointmentID,
		Results:       NewResultStore(),
	}
}
