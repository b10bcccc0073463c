package models

const MissingResultPlaceholder = "-"

// ResultStore maps a result key (test name, CBC analyte or sub-field such as
// "ABO Group") to the operator-entered value. Writes overwrite.
type ResultStore map[string]string

func NewResultStore() ResultStore {
	return make(ResultStore)
}

func (s ResultStore) Set(key, value string) {
	s[key] = value
}

func (s ResultStore) Get(key string) (string, bool) {
	value, ok := s[key]
	return value, ok
}

// Display returns the value, or "-" when nothing usable was entered.
func (s ResultStore) Display(key string) string {
	if value := s[key]; value != "" {
		return value
	}
	return MissingResultPlaceholder
}

// DisplayWithUnit appends unit only to present values, so a missing
// result never renders as "-mg/dL".
func (s ResultStore) DisplayWithUnit(key, unit string) string {
	if value := s[key]; value != "" {
		return value + unit
	}
	return MissingResultPlaceholder
}
