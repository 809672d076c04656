package errors

// FieldErrors collects field-level violations in declaration order per field.
type FieldErrors map[string][]string

// Add appends msg to the violations of field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Merge copies every violation of other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		f[field] = append(f[field], msgs...)
	}
}

// Err returns a VALIDATION_ERROR carrying the violations, or nil when there are none.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return New(CodeValidation, "Validation failed").WithDetails(map[string][]string(f))
}
