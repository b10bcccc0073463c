package labreports

import (
	"errors"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/utils"
	"time"
)

const (
	CollectionTypeInLab   = "Taken in Lab"
	OutsourcedTestsTitle  = "Outsourced Tests:"
	consultantPlaceholder = " "
)

var (
	cbcTableColumns        = []string{"Test", "Result", "Normal Range", "Unit"}
	bloodGroupTableColumns = []string{models.ABOGroupResultKey, "Rhesus (Rh)"}
)

// ReportInput is everything a report is composed from.
type ReportInput struct {
	Appointment *models.Appointment
	Results     models.ResultStore
	CollectedAt *time.Time
	ReportedAt  *time.Time
	QRCodeURL   string
}

// ComposeReport lays out the report pages. A report has two pages when the
// CBC panel was requested (the CBC table, then everything else) and one page
// otherwise. Every page repeats the same header and footer.
func ComposeReport(catalog *models.LabCatalog, template models.ReportTemplate, input ReportInput, now time.Time) ([]models.ReportPage, error) {
	if input.Appointment.IsEmpty() {
		return nil, exceptions.ErrComposeLabReport(errors.New("appointment is not loaded"))
	}
	results := input.Results
	if results == nil {
		results = models.NewResultStore()
	}

	header := composeHeader(template, input, now)
	footer := composeFooter(template)
	partition := partitionLabs(catalog, input.Appointment.Labs)

	remainder := make([]models.ReportSection, 0, len(partition.inHouse)+1)
	for _, test := range partition.inHouse {
		remainder = append(remainder, inHouseSection(test, results))
	}
	if len(partition.outsourced) > 0 {
		remainder = append(remainder, models.ReportSection{
			Kind:  models.SectionKindList,
			Title: OutsourcedTestsTitle,
			Items: partition.outsourced,
		})
	}

	if !partition.hasCBC {
		return []models.ReportPage{{Header: header, Body: remainder, Footer: footer}}, nil
	}

	cbc := catalog.Lookup(models.CBCTestName)
	return []models.ReportPage{
		{Header: header, Body: []models.ReportSection{cbcSection(cbc, results)}, Footer: footer},
		{Header: header, Body: remainder, Footer: footer},
	}, nil
}

// UnclassifiedTests lists requested tests the catalog does not know. They are
// left off the report.
func UnclassifiedTests(catalog *models.LabCatalog, labs []string) []string {
	return partitionLabs(catalog, labs).unclassified
}

type labPartition struct {
	hasCBC       bool
	inHouse      []models.LabTest
	outsourced   []string
	unclassified []string
}

// partitionLabs keeps the request order inside each group. The CBC panel is
// pulled out of the in-house group.
func partitionLabs(catalog *models.LabCatalog, labs []string) labPartition {
	var partition labPartition
	for _, name := range labs {
		test := catalog.Lookup(name)
		switch {
		case test.Kind == models.FieldKindCompositeTable:
			partition.hasCBC = true
		case test.Category == models.TestCategoryInHouse:
			partition.inHouse = append(partition.inHouse, test)
		case test.Category == models.TestCategoryOutsourced:
			partition.outsourced = append(partition.outsourced, name)
		default:
			partition.unclassified = append(partition.unclassified, name)
		}
	}
	return partition
}

func composeHeader(template models.ReportTemplate, input ReportInput, now time.Time) models.ReportHeader {
	appointment := input.Appointment

	collectionType := models.MissingResultPlaceholder
	if appointment.IsCollectedInLab() {
		collectionType = CollectionTypeInLab
	}

	return models.ReportHeader{
		Institution: template.Institution,
		Department:  template.Department,
		Motto:       template.Motto,
		QRCodeURL:   input.QRCodeURL,
		Demographics: []models.LabeledValue{
			{Label: "MRN", Value: appointment.MRN},
			{Label: "Collection Date", Value: reportDate(input.CollectedAt, now)},
			{Label: "Patient Name", Value: appointment.Name},
			{Label: "Reported Date", Value: reportDate(input.ReportedAt, now)},
			{Label: "Father's Name", Value: appointment.FatherName},
			{Label: "Location", Value: appointment.LabLocated},
			{Label: "Age/Sex", Value: orDash(appointment.Age.String()) + " / " + orDash(appointment.Sex)},
			{Label: "Referred by", Value: template.ReferringPhysician(appointment.Doctor)},
			{Label: "Phone", Value: orDash(appointment.Phone.String())},
			{Label: "Consultant", Value: consultantPlaceholder},
			{Label: "CNIC", Value: orDash(appointment.CNIC.String())},
			{Label: "Collection Type", Value: collectionType},
			{Label: "Address", Value: orDash(appointment.Address)},
		},
	}
}

func composeFooter(template models.ReportTemplate) models.ReportFooter {
	return models.ReportFooter{
		Signatories: append([]models.Signatory(nil), template.Signatories...),
		Phone:       template.Phone,
		Address:     template.Address,
	}
}

func cbcSection(test models.LabTest, results models.ResultStore) models.ReportSection {
	rows := make([][]string, 0, len(test.Analytes))
	for _, analyte := range test.Analytes {
		rows = append(rows, []string{analyte.Name, results.Display(analyte.Name), analyte.Range, analyte.Unit})
	}
	return models.ReportSection{
		Kind:    models.SectionKindTable,
		Title:   models.CBCReportTitle,
		Columns: cbcTableColumns,
		Rows:    rows,
	}
}

func inHouseSection(test models.LabTest, results models.ResultStore) models.ReportSection {
	switch test.Kind {
	case models.FieldKindBloodGroup:
		return models.ReportSection{
			Kind:    models.SectionKindTable,
			Title:   test.Name,
			Columns: bloodGroupTableColumns,
			Rows: [][]string{{
				results.Display(models.ABOGroupResultKey),
				results.Display(models.RhesusResultKey),
			}},
		}
	case models.FieldKindNumeric:
		return models.ReportSection{
			Kind:  models.SectionKindResult,
			Title: test.Name,
			Value: results.DisplayWithUnit(test.Name, test.Unit),
		}
	default:
		return models.ReportSection{
			Kind:  models.SectionKindResult,
			Title: test.Name,
			Value: results.Display(test.Name),
		}
	}
}

func reportDate(value *time.Time, now time.Time) string {
	if value == nil || value.IsZero() {
		return utils.FormatLongDateTime(now)
	}
	return utils.FormatLongDateTime(*value)
}

func orDash(value string) string {
	if value == "" {
		return models.MissingResultPlaceholder
	}
	return value
}
