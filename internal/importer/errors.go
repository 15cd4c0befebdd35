package importer

import "fmt"

// MissingHeaderError reports a required CSV header absent from the
// input file. The whole import aborts; there is no partial store.
type MissingHeaderError struct {
	File   string
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("%s: missing required header %q", e.File, e.Header)
}

// DuplicateHeaderError reports a required header appearing twice, which
// makes column selection ambiguous.
type DuplicateHeaderError struct {
	File   string
	Header string
}

func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("%s: duplicate header %q", e.File, e.Header)
}

// BoolFieldError reports a yes/no field holding anything other than
// Y or N. Unlike phone numbers, a bad boolean has no safe reading.
type BoolFieldError struct {
	Field string
	Value string
}

func (e *BoolFieldError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %q to boolean (want Y or N)", e.Field, e.Value)
}

// IntegrityError reports the importer and the record store disagreeing
// about a resolved name. This means a matching bug, not bad data, and
// always aborts the import.
type IntegrityError struct {
	Expected string
	Resolved string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation: expected student %q, resolved %q", e.Expected, e.Resolved)
}
