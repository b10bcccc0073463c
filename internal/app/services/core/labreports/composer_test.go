package labreports

import (
	"labreport-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 19, 15, 4, 0, 0, time.UTC)

func compose(t *testing.T, appointment *models.Appointment, results models.ResultStore) []models.ReportPage {
	t.Helper()
	pages, err := ComposeReport(models.DefaultLabCatalog(), models.DefaultReportTemplate(), ReportInput{
		Appointment: appointment,
		Results:     results,
		QRCodeURL:   "http://clinic.local/api/appointments/openLabReport/" + appointment.MRN,
	}, testNow)
	require.NoError(t, err)
	return pages
}

func demographic(page models.ReportPage, label string) string {
	for _, item := range page.Header.Demographics {
		if item.Label == label {
			return item.Value
		}
	}
	return ""
}

func TestComposeReportPagination(t *testing.T) {
	tests := []struct {
		name  string
		labs  []string
		pages int
	}{
		{"CBC Only", []string{models.CBCTestName}, 2},
		{"CBC With Others", []string{models.HemoglobinTestName, models.CBCTestName, "LFTs"}, 2},
		{"No CBC", []string{models.HemoglobinTestName, models.BloodGroupTestName, "RFTs"}, 1},
		{"Outsourced Only", []string{"ALT", "AST"}, 1},
		{"No Labs", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := compose(t, &models.Appointment{MRN: "M1", LabLocation: "InHouse", Labs: tt.labs}, nil)
			assert.Len(t, pages, tt.pages)

			for _, page := range pages {
				assert.Equal(t, pages[0].Header, page.Header)
				assert.Equal(t, pages[0].Footer, page.Footer)
			}
		})
	}
}

func TestComposeReportCBCScenario(t *testing.T) {
	pages := compose(t, &models.Appointment{
		MRN:         "M1",
		LabLocation: "InHouse",
		Labs:        []string{models.CBCTestName, "ICT malaria"},
	}, models.NewResultStore())

	require.Len(t, pages, 2)

	require.Len(t, pages[0].Body, 1)
	cbc := pages[0].Body[0]
	assert.Equal(t, models.SectionKindTable, cbc.Kind)
	assert.Equal(t, "CBC (Complete Blood Count)", cbc.Title)
	assert.Equal(t, []string{"Test", "Result", "Normal Range", "Unit"}, cbc.Columns)
	require.Len(t, cbc.Rows, 12)
	for _, row := range cbc.Rows {
		assert.Equal(t, "-", row[1], "row %s", row[0])
	}
	assert.Equal(t, []string{"Platelets", "-", "140 - 450", "x10^3/µL"}, cbc.Rows[6])

	require.Len(t, pages[1].Body, 1)
	outsourced := pages[1].Body[0]
	assert.Equal(t, models.SectionKindList, outsourced.Kind)
	assert.Equal(t, "Outsourced Tests:", outsourced.Title)
	assert.Equal(t, []string{"ICT malaria"}, outsourced.Items)
}

func TestComposeReportSections(t *testing.T) {
	t.Run("Blood Group Without Unit", func(t *testing.T) {
		pages := compose(t, &models.Appointment{MRN: "M2", Labs: []string{models.BloodGroupTestName}},
			models.ResultStore{"ABO Group": "B", "Rhesus": "Negative"})

		require.Len(t, pages, 1)
		require.Len(t, pages[0].Body, 1)
		section := pages[0].Body[0]
		assert.Equal(t, "Blood Group", section.Title)
		assert.Equal(t, []string{"ABO Group", "Rhesus (Rh)"}, section.Columns)
		assert.Equal(t, [][]string{{"B", "Negative"}}, section.Rows)
	})

	t.Run("Unit Suffix Only With Value", func(t *testing.T) {
		pages := compose(t, &models.Appointment{MRN: "M3", Labs: []string{models.BloodSugarTestName, models.HemoglobinTestName}},
			models.ResultStore{models.HemoglobinTestName: "12.5"})

		body := pages[0].Body
		require.Len(t, body, 2)
		assert.Equal(t, models.BloodSugarTestName, body[0].Title)
		assert.Equal(t, "-", body[0].Value)
		assert.Equal(t, "12.5g/dL", body[1].Value)
	})

	t.Run("Enum Results In Request Order", func(t *testing.T) {
		pages := compose(t, &models.Appointment{MRN: "M4", Labs: []string{"Anti HIV - 1 & 2", "LFTs", "HBsAg screening", "ALT"}},
			models.ResultStore{"HBsAg screening": "Negative"})

		body := pages[0].Body
		require.Len(t, body, 3)
		assert.Equal(t, "Anti HIV - 1 & 2", body[0].Title)
		assert.Equal(t, "-", body[0].Value)
		assert.Equal(t, "HBsAg screening", body[1].Title)
		assert.Equal(t, "Negative", body[1].Value)
		assert.Equal(t, []string{"LFTs", "ALT"}, body[2].Items)
	})

	t.Run("Outsourced List Omitted When Empty", func(t *testing.T) {
		pages := compose(t, &models.Appointment{MRN: "M5", Labs: []string{models.CBCTestName}}, nil)

		require.Len(t, pages, 2)
		assert.Empty(t, pages[1].Body)
	})

	t.Run("Unclassified Tests Are Left Off", func(t *testing.T) {
		appointment := &models.Appointment{MRN: "M6", Labs: []string{"Lipid Profile", models.HemoglobinTestName}}
		pages := compose(t, appointment, nil)

		require.Len(t, pages[0].Body, 1)
		assert.Equal(t, models.HemoglobinTestName, pages[0].Body[0].Title)
		assert.Equal(t, []string{"Lipid Profile"}, UnclassifiedTests(models.DefaultLabCatalog(), appointment.Labs))
	})

	t.Run("Not Loaded", func(t *testing.T) {
		_, err := ComposeReport(models.DefaultLabCatalog(), models.DefaultReportTemplate(), ReportInput{}, testNow)
		assert.Error(t, err)
	})
}

func TestComposeReportHeader(t *testing.T) {
	t.Run("Fallbacks", func(t *testing.T) {
		pages := compose(t, &models.Appointment{MRN: "M1", Name: "Ali", LabLocation: "inhouse"}, nil)
		page := pages[0]

		assert.Equal(t, "Family Care Hospital", page.Header.Institution)
		assert.Equal(t, "http://clinic.local/api/appointments/openLabReport/M1", page.Header.QRCodeURL)
		assert.Equal(t, "- / -", demographic(page, "Age/Sex"))
		assert.Equal(t, "-", demographic(page, "Referred by"))
		assert.Equal(t, "-", demographic(page, "Phone"))
		assert.Equal(t, "-", demographic(page, "CNIC"))
		assert.Equal(t, "-", demographic(page, "Address"))
		assert.Equal(t, "-", demographic(page, "Collection Type"))
		assert.Equal(t, "October 19th, 2026 3:04 PM", demographic(page, "Collection Date"))
		assert.Equal(t, "October 19th, 2026 3:04 PM", demographic(page, "Reported Date"))
	})

	t.Run("Doctor Codes", func(t *testing.T) {
		tests := map[string]string{
			"paediatrics": "Dr. Ejaz Mazari",
			"gynae":       "Dr. Salma Ejaz",
			"Dr. Qureshi": "Dr. Qureshi",
		}
		for code, expected := range tests {
			pages := compose(t, &models.Appointment{MRN: "M1", Doctor: code}, nil)
			assert.Equal(t, expected, demographic(pages[0], "Referred by"))
		}
	})

	t.Run("Collected In Lab", func(t *testing.T) {
		collected := time.Date(2026, time.March, 2, 9, 5, 0, 0, time.UTC)
		pages, err := ComposeReport(models.DefaultLabCatalog(), models.DefaultReportTemplate(), ReportInput{
			Appointment: &models.Appointment{MRN: "M1", Age: "34", Sex: "Female", LabLocation: "InHouse"},
			CollectedAt: &collected,
		}, testNow)
		require.NoError(t, err)

		assert.Equal(t, "Taken in Lab", demographic(pages[0], "Collection Type"))
		assert.Equal(t, "34 / Female", demographic(pages[0], "Age/Sex"))
		assert.Equal(t, "March 2nd, 2026 9:05 AM", demographic(pages[0], "Collection Date"))
	})

	t.Run("Footer", func(t *testing.T) {
		pages := compose(t, &models.Appointment{MRN: "M1"}, nil)
		footer := pages[0].Footer

		require.Len(t, footer.Signatories, 3)
		assert.Equal(t, "Sadaf Raheem", footer.Signatories[2].Name)
		assert.Equal(t, "0333-6438402", footer.Phone)
	})
}
