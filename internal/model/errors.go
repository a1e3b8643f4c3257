package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMerge means no trade date matched a Fear or Greed sentiment day.
	ErrEmptyMerge = errors.New("empty after merge: no overlapping Fear/Greed dates between sentiment and trades")

	// ErrEmptySample means one side of a rank test has no observations.
	ErrEmptySample = errors.New("empty statistical sample")

	// ErrInvalidDate is returned for sentiment rows whose date cannot be parsed.
	ErrInvalidDate = errors.New("invalid sentiment date")
)

// SchemaError reports a required column that is absent from an input file.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("required column %q missing", e.Column)
	}
	return fmt.Sprintf("%s: required column %q missing", e.Source, e.Column)
}
