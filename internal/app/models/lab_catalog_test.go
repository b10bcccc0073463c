package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabCatalogLookup(t *testing.T) {
	catalog := DefaultLabCatalog()

	tests := []struct {
		name     string
		testName string
		category TestCategory
		kind     FieldKind
		unit     string
	}{
		{"CBC Composite", CBCTestName, TestCategoryInHouse, FieldKindCompositeTable, ""},
		{"Blood Group", BloodGroupTestName, TestCategoryInHouse, FieldKindBloodGroup, ""},
		{"Blood Sugar", BloodSugarTestName, TestCategoryInHouse, FieldKindNumeric, "mg/dL"},
		{"Hemoglobin", HemoglobinTestName, TestCategoryInHouse, FieldKindNumeric, "g/dL"},
		{"HBsAg", "HBsAg screening", TestCategoryInHouse, FieldKindEnum, ""},
		{"Anti HIV", "Anti HIV - 1 & 2", TestCategoryInHouse, FieldKindEnum, ""},
		{"ICT Malaria", "ICT malaria", TestCategoryOutsourced, FieldKindOutsourced, ""},
		{"VDRL", "VDRL (Syphilis)", TestCategoryOutsourced, FieldKindOutsourced, ""},
		{"Unknown", "Lipid Profile", TestCategoryUnclassified, FieldKindUnclassified, ""},
		{"Case Mismatch Is Unknown", "lfts", TestCategoryUnclassified, FieldKindUnclassified, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test := catalog.Lookup(tt.testName)
			assert.Equal(t, tt.testName, test.Name)
			assert.Equal(t, tt.category, test.Category)
			assert.Equal(t, tt.kind, test.Kind)
			assert.Equal(t, tt.unit, test.Unit)
		})
	}
}

func TestLabTestResultFields(t *testing.T) {
	catalog := DefaultLabCatalog()

	t.Run("CBC Has Twelve Analytes In Schedule Order", func(t *testing.T) {
		fields := catalog.Lookup(CBCTestName).ResultFields()
		require.Len(t, fields, 12)
		assert.Equal(t, "HB", fields[0].Key)
		assert.Equal(t, "11.5 - 14.5", fields[0].Range)
		assert.Equal(t, "g/dl", fields[0].Unit)
		assert.Equal(t, "Monocytes", fields[11].Key)
		assert.Equal(t, "x10^3/µL", fields[6].Unit)
	})

	t.Run("Blood Group Writes Two Keys", func(t *testing.T) {
		fields := catalog.Lookup(BloodGroupTestName).ResultFields()
		require.Len(t, fields, 2)
		assert.Equal(t, ABOGroupResultKey, fields[0].Key)
		assert.Len(t, fields[0].Options, 4)
		assert.Equal(t, RhesusResultKey, fields[1].Key)
		assert.Equal(t, "Positive", fields[1].Options[0].Value)
	})

	t.Run("Numeric Field Keyed By Test Name", func(t *testing.T) {
		fields := catalog.Lookup(HemoglobinTestName).ResultFields()
		require.Len(t, fields, 1)
		assert.Equal(t, HemoglobinTestName, fields[0].Key)
		assert.Equal(t, InputTypeNumber, fields[0].Input)
	})

	t.Run("Enum Field Is Positive Or Negative", func(t *testing.T) {
		fields := catalog.Lookup("Anti HCV (Screening, ICT)").ResultFields()
		require.Len(t, fields, 1)
		assert.Equal(t, []FieldOption{{Value: "Positive", Label: "Positive"}, {Value: "Negative", Label: "Negative"}}, fields[0].Options)
	})

	t.Run("Outsourced And Unclassified Have No Fields", func(t *testing.T) {
		assert.Empty(t, catalog.Lookup("LFTs").ResultFields())
		assert.Empty(t, catalog.Lookup("Unknown Panel").ResultFields())
	})
}

func TestLabCatalogListsAreCopies(t *testing.T) {
	catalog := DefaultLabCatalog()
	inHouse := catalog.InHouseTests()
	inHouse[0] = "mutated"

	assert.Equal(t, CBCTestName, catalog.InHouseTests()[0])
	assert.Len(t, catalog.OutsourcedTests(), 10)
}

func TestResultStore(t *testing.T) {
	t.Run("Round Trip With Last Write Wins", func(t *testing.T) {
		store := NewResultStore()
		store.Set("HB", "12.1")
		store.Set("ABO Group", "B")
		store.Set("HB", "13.4")

		value, ok := store.Get("HB")
		assert.True(t, ok)
		assert.Equal(t, "13.4", value)

		value, ok = store.Get("ABO Group")
		assert.True(t, ok)
		assert.Equal(t, "B", value)
	})

	t.Run("Absent Key", func(t *testing.T) {
		_, ok := NewResultStore().Get("Rhesus")
		assert.False(t, ok)
	})

	t.Run("Unit Only Appended To Present Values", func(t *testing.T) {
		store := NewResultStore()
		assert.Equal(t, "-", store.DisplayWithUnit(BloodSugarTestName, "mg/dL"))

		store.Set(HemoglobinTestName, "")
		assert.Equal(t, "-", store.DisplayWithUnit(HemoglobinTestName, "g/dL"))

		store.Set(HemoglobinTestName, "12.5")
		assert.Equal(t, "12.5g/dL", store.DisplayWithUnit(HemoglobinTestName, "g/dL"))
	})
}

func TestReferringPhysician(t *testing.T) {
	template := DefaultReportTemplate()

	assert.Equal(t, "Dr. Ejaz Mazari", template.ReferringPhysician("paediatrics"))
	assert.Equal(t, "Dr. Salma Ejaz", template.ReferringPhysician("gynae"))
	assert.Equal(t, "Dr. Khan", template.ReferringPhysician("Dr. Khan"))
	assert.Equal(t, "-", template.ReferringPhysician(""))
}
