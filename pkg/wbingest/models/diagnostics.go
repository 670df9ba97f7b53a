package models

// ReasonCode classifies a parse problem.
type ReasonCode string

const (
	// ReasonFileOrSheetMissing means the workbook or a required sheet could not be read.
	ReasonFileOrSheetMissing ReasonCode = "FileOrSheetMissing"
	// ReasonRequiredMarkerOrColumnMissing means a required marker table or column was not found.
	ReasonRequiredMarkerOrColumnMissing ReasonCode = "RequiredMarkerOrColumnMissing"
	// ReasonTypeCoercionFailure means a required value could not be converted.
	ReasonTypeCoercionFailure ReasonCode = "TypeCoercionFailure"
	// ReasonOptionalSectionAbsent means an optional sheet, table or column was missing.
	ReasonOptionalSectionAbsent ReasonCode = "OptionalSectionAbsent"
	// ReasonPerItemSkipped means one item (sector, row) was omitted.
	ReasonPerItemSkipped ReasonCode = "PerItemSkipped"
)

// Fatal reports whether problems with this code abort the whole parse.
func (c ReasonCode) Fatal() bool {
	switch c {
	case ReasonFileOrSheetMissing, ReasonRequiredMarkerOrColumnMissing, ReasonTypeCoercionFailure:
		return true
	default:
		return false
	}
}

// Warning is a non-fatal problem recorded alongside a result.
type Warning struct {
	// Code is the reason class.
	Code ReasonCode `json:"code"`
	// Sheet is the sheet the problem was found in (optional).
	Sheet string `json:"sheet,omitempty"`
	// Message is a human readable description.
	Message string `json:"message"`
}
