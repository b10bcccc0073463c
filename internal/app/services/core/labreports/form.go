package labreports

import (
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/dto/responses"
	"labreport-service/internal/pkg/utils"
)

const (
	EmptyLabsMessage     = "No lab tests assigned."
	LabCollectionPending = "Pending"
)

// BuildForm describes the entry form of a loaded session. Only in-house tests
// of an in-house appointment are editable; everything else is shown by name.
func BuildForm(catalog *models.LabCatalog, session *models.LabSession) *responses.LabReportForm {
	appointment := session.Appointment

	form := &responses.LabReportForm{
		AppointmentID: session.AppointmentID,
		Summary: responses.AppointmentSummary{
			MRN:         appointment.MRN,
			Status:      appointment.Status,
			Name:        appointment.Name,
			Age:         appointment.Age.String(),
			Sex:         appointment.Sex,
			CNIC:        appointment.CNIC.String(),
			Doctor:      appointment.Doctor,
			Phone:       appointment.Phone.String(),
			Address:     appointment.Address,
			LabLocation: appointment.LabLocation,
		},
		Tests:         make([]responses.LabFormEntry, 0, len(appointment.Labs)),
		LabCollection: appointment.LabCollection,
		CanViewReport: appointment.LabCollection != LabCollectionPending,
		CollectedAt:   utils.FormatReportTimestamp(session.CollectedAt),
		ReportedAt:    utils.FormatReportTimestamp(session.ReportedAt),
	}
	if len(appointment.Labs) == 0 {
		form.EmptyMessage = EmptyLabsMessage
	}

	allowsEntry := appointment.AllowsResultEntry()
	for _, name := range appointment.Labs {
		test := catalog.Lookup(name)
		entry := responses.LabFormEntry{
			Name:     name,
			Category: test.Category,
			Kind:     test.Kind,
		}

		switch {
		case test.IsInHouse() && allowsEntry:
			entry.Editable = true
			for _, field := range test.ResultFields() {
				value, _ := session.Results.Get(field.Key)
				entry.Fields = append(entry.Fields, responses.LabFormField{ResultField: field, Value: value})
			}
		case test.IsInHouse():
			entry.Kind = models.FieldKindOutsourced
		}

		form.Tests = append(form.Tests, entry)
	}

	return form
}
