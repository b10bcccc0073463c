package models

type SectionKind string

const (
	SectionKindTable  SectionKind = "table"
	SectionKindResult SectionKind = "result"
	SectionKindList   SectionKind = "list"
)

// ReportPage is one printable page before rasterization.
type ReportPage struct {
	Header ReportHeader    `json:"header"`
	Body   []ReportSection `json:"body"`
	Footer ReportFooter    `json:"footer"`
}

type ReportHeader struct {
	Institution  string         `json:"institution"`
	Department   string         `json:"department"`
	Motto        string         `json:"motto"`
	QRCodeURL    string         `json:"qr_code_url"`
	Demographics []LabeledValue `json:"demographics"`
}

type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReportSection is one body block. Tables use Columns and Rows, results use
// Value and lists use Items.
type ReportSection struct {
	Kind    SectionKind `json:"kind"`
	Title   string      `json:"title"`
	Columns []string    `json:"columns,omitempty"`
	Rows    [][]string  `json:"rows,omitempty"`
	Value   string      `json:"value,omitempty"`
	Items   []string    `json:"items,omitempty"`
}

type ReportFooter struct {
	Signatories []Signatory `json:"signatories"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
}

type Signatory struct {
	Name        string `json:"name"`
	Credentials string `json:"credentials,omitempty"`
	Title       string `json:"title,omitempty"`
}

// ReportTemplate holds the static letterhead content.
type ReportTemplate struct {
	Institution         string
	Department          string
	Motto               string
	ReferringPhysicians map[string]string
	Signatories         []Signatory
	Phone               string
	Address             string
}

func DefaultReportTemplate() ReportTemplate {
	return ReportTemplate{
		Institution: "Family Care Hospital",
		Department:  "Clinical Laboratory",
		Motto:       "\"Determined to serve humanity\"",
		ReferringPhysicians: map[string]string{
			"paediatrics": "Dr. Ejaz Mazari",
			"gynae":       "Dr. Salma Ejaz",
		},
		Signatories: []Signatory{
			{Name: "Dr. Ejaz Mazari", Credentials: "MBBS, FCPS", Title: "Child Specialist"},
			{Name: "Dr. Salma Ejaz", Credentials: "MBBS"},
			{Name: "Sadaf Raheem", Title: "Lab Technologist"},
		},
		Phone:   "0333-6438402",
		Address: "Qutub Canal Link Road, Rajanpur",
	}
}

// ReferringPhysician resolves a doctor code to its display name.
func (t ReportTemplate) ReferringPhysician(doctorCode string) string {
	if name, ok := t.ReferringPhysicians[doctorCode]; ok {
		return name
	}
	if doctorCode == "" {
		return MissingResultPlaceholder
	}
	return doctorCode
}
