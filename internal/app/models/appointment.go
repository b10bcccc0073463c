package models

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

const LabLocationInHouse = "InHouse"

// Appointment is the clinic API appointment record a lab report is built from.
type Appointment struct {
	MRN           string     `json:"mrn"`
	Name          string     `json:"name"`
	FatherName    string     `json:"fatherName"`
	Age           FlexString `json:"age"`
	Sex           string     `json:"sex"`
	Phone         FlexString `json:"phone"`
	Address       string     `json:"address"`
	CNIC          FlexString `json:"cnic"`
	Doctor        string     `json:"doctor"`
	LabLocation   string     `json:"labLocation"`
	LabLocated    string     `json:"labLocated"`
	Status        string     `json:"status"`
	LabCollection string     `json:"labCollection"`
	Labs          []string   `json:"labs"`
}

func (a *Appointment) IsEmpty() bool {
	return a == nil || a.MRN == ""
}

// AllowsResultEntry reports whether operators enter results for in-house tests.
// The clinic API is not consistent about casing here.
func (a *Appointment) AllowsResultEntry() bool {
	return strings.EqualFold(a.LabLocation, LabLocationInHouse)
}

// IsCollectedInLab only matches the canonical spelling.
func (a *Appointment) IsCollectedInLab() bool {
	return a.LabLocation == LabLocationInHouse
}

// FlexString accepts both JSON strings and JSON numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = FlexString(value)
		return nil
	}
	*s = FlexString(data)
	return nil
}

func (s FlexString) String() string {
	return string(s)
}
