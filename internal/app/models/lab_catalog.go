package models

type TestCategory string

const (
	TestCategoryInHouse      TestCategory = "in-house"
	TestCategoryOutsourced   TestCategory = "outsourced"
	TestCategoryUnclassified TestCategory = "unclassified"
)

// FieldKind selects how a test's result is entered on the form and laid out on the report.
type FieldKind string

const (
	FieldKindCompositeTable FieldKind = "composite_table"
	FieldKindBloodGroup     FieldKind = "blood_group"
	FieldKindNumeric        FieldKind = "numeric"
	FieldKindEnum           FieldKind = "enum"
	FieldKindOutsourced     FieldKind = "outsourced"
	FieldKindUnclassified   FieldKind = "unclassified"
)

type InputType string

const (
	InputTypeText   InputType = "text"
	InputTypeNumber InputType = "number"
	InputTypeSelect InputType = "select"
)

const (
	CBCTestName        = "CBC (Complete Blood Count) Basic Hematology"
	CBCReportTitle     = "CBC (Complete Blood Count)"
	BloodGroupTestName = "Blood Group"
	BloodSugarTestName = "Blood Sugar Random/Fasting"
	HemoglobinTestName = "Hemoglobin"

	ABOGroupResultKey = "ABO Group"
	RhesusResultKey   = "Rhesus"
)

type Analyte struct {
	Name  string `json:"name"`
	Range string `json:"range"`
	Unit  string `json:"unit"`
}

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ResultField is one editable cell. Key is the Result Store key it writes to.
type ResultField struct {
	Key     string        `json:"key"`
	Label   string        `json:"label"`
	Input   InputType     `json:"input"`
	Options []FieldOption `json:"options,omitempty"`
	Unit    string        `json:"unit,omitempty"`
	Range   string        `json:"range,omitempty"`
}

type LabTest struct {
	Name     string        `json:"name"`
	Category TestCategory  `json:"category"`
	Kind     FieldKind     `json:"kind"`
	Unit     string        `json:"unit,omitempty"`
	Options  []FieldOption `json:"options,omitempty"`
	Analytes []Analyte     `json:"analytes,omitempty"`
}

func (t LabTest) IsInHouse() bool {
	return t.Category == TestCategoryInHouse
}

// ResultFields lists the editable fields of an in-house test. Outsourced and
// unclassified tests have none.
func (t LabTest) ResultFields() []ResultField {
	switch t.Kind {
	case FieldKindCompositeTable:
		fields := make([]ResultField, 0, len(t.Analytes))
		for _, analyte := range t.Analytes {
			fields = append(fields, ResultField{
				Key:   analyte.Name,
				Label: analyte.Name,
				Input: InputTypeText,
				Unit:  analyte.Unit,
				Range: analyte.Range,
			})
		}
		return fields
	case FieldKindBloodGroup:
		return []ResultField{
			{Key: ABOGroupResultKey, Label: ABOGroupResultKey, Input: InputTypeSelect, Options: aboGroupOptions},
			{Key: RhesusResultKey, Label: "Rhesus (Rh)", Input: InputTypeSelect, Options: rhesusOptions},
		}
	case FieldKindNumeric:
		return []ResultField{{Key: t.Name, Label: "Result (" + t.Unit + ")", Input: InputTypeNumber, Unit: t.Unit}}
	case FieldKindEnum:
		return []ResultField{{Key: t.Name, Label: "Result", Input: InputTypeSelect, Options: t.Options}}
	default:
		return nil
	}
}

var (
	cbcAnalytes = []Analyte{
		{Name: "HB", Range: "11.5 - 14.5", Unit: "g/dl"},
		{Name: "Total RBC", Range: "4 - 6", Unit: "x10^12/l"},
		{Name: "HCT", Range: "32 - 46", Unit: "%"},
		{Name: "MCV", Range: "75 - 85", Unit: "fl"},
		{Name: "MCH", Range: "26 - 32", Unit: "pg"},
		{Name: "MCHC", Range: "30 - 35", Unit: "g/dl"},
		{Name: "Platelets", Range: "140 - 450", Unit: "x10^3/µL"},
		{Name: "WBC", Range: "6 - 13", Unit: "10^3/µl"},
		{Name: "Neutrophils", Range: "20 - 75", Unit: "%"},
		{Name: "Lymphocytes", Range: "30 - 75", Unit: "%"},
		{Name: "Eosinophils", Range: "1 - 5", Unit: "%"},
		{Name: "Monocytes", Range: "2 - 6", Unit: "%"},
	}

	positiveNegativeOptions = []FieldOption{
		{Value: "Positive", Label: "Positive"},
		{Value: "Negative", Label: "Negative"},
	}
	aboGroupOptions = []FieldOption{
		{Value: "A", Label: "A"},
		{Value: "B", Label: "B"},
		{Value: "AB", Label: "AB"},
		{Value: "O", Label: "O"},
	}
	rhesusOptions = []FieldOption{
		{Value: "Positive", Label: "Positive (+)"},
		{Value: "Negative", Label: "Negative (-)"},
	}

	defaultInHouseTests = []string{
		CBCTestName,
		BloodSugarTestName,
		"HBsAg screening",
		"Anti HCV (Screening, ICT)",
		"Anti HIV - 1 & 2",
		HemoglobinTestName,
		BloodGroupTestName,
	}
	defaultOutsourcedTests = []string{
		"ICT malaria",
		"LFTs",
		"RFTs",
		"Blood Urea",
		"ALT",
		"Serum Creatinine",
		"AST",
		"ALP",
		"Serum Uric Acid",
		"VDRL (Syphilis)",
	}
)

// LabCatalog classifies test names. It is built once and only read afterwards,
// so a single instance is shared by the form and the report composer.
type LabCatalog struct {
	tests      map[string]LabTest
	inHouse    []string
	outsourced []string
}

func NewLabCatalog(inHouse, outsourced []string) *LabCatalog {
	catalog := &LabCatalog{
		tests:      make(map[string]LabTest, len(inHouse)+len(outsourced)),
		inHouse:    append([]string(nil), inHouse...),
		outsourced: append([]string(nil), outsourced...),
	}
	for _, name := range inHouse {
		catalog.tests[name] = inHouseTest(name)
	}
	for _, name := range outsourced {
		if _, exists := catalog.tests[name]; exists {
			continue
		}
		catalog.tests[name] = LabTest{Name: name, Category: TestCategoryOutsourced, Kind: FieldKindOutsourced}
	}
	return catalog
}

func DefaultLabCatalog() *LabCatalog {
	return NewLabCatalog(defaultInHouseTests, defaultOutsourcedTests)
}

// inHouseTest applies the shape overrides in priority order.
func inHouseTest(name string) LabTest {
	test := LabTest{Name: name, Category: TestCategoryInHouse}
	switch name {
	case CBCTestName:
		test.Kind = FieldKindCompositeTable
		test.Analytes = cbcAnalytes
	case BloodGroupTestName:
		test.Kind = FieldKindBloodGroup
	case BloodSugarTestName:
		test.Kind = FieldKindNumeric
		test.Unit = "mg/dL"
	case HemoglobinTestName:
		test.Kind = FieldKindNumeric
		test.Unit = "g/dL"
	default:
		test.Kind = FieldKindEnum
		test.Options = positiveNegativeOptions
	}
	return test
}

// Lookup never fails: names in neither list come back as unclassified.
func (c *LabCatalog) Lookup(name string) LabTest {
	if test, ok := c.tests[name]; ok {
		return test
	}
	return LabTest{Name: name, Category: TestCategoryUnclassified, Kind: FieldKindUnclassified}
}

func (c *LabCatalog) InHouseTests() []string {
	return append([]string(nil), c.inHouse...)
}

func (c *LabCatalog) OutsourcedTests() []string {
	return append([]string(nil), c.outsourced...)
}
