package sheet

import "errors"

var (
	// ErrValidation marks malformed tool input, e.g. mismatched list lengths.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyStore is returned when the sheet range holds no rows at all.
	ErrEmptyStore = errors.New("spreadsheet is empty")

	// ErrNoMatch is returned when an update finds no qualifying rows.
	ErrNoMatch = errors.New("no matching tasks")
)
