package entity

// FieldMap maps a field name to its normalized value: float64 for numeric
// fields, string otherwise. Fields that did not match are absent.
type FieldMap map[string]any

// Number returns the numeric value of name, if present and numeric.
func (m FieldMap) Number(name string) (float64, bool) {
	v, ok := m[name].(float64)
	return v, ok
}

// String returns the string value of name, if present and textual.
func (m FieldMap) String(name string) (string, bool) {
	v, ok := m[name].(string)
	return v, ok
}
