package param

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parameter errors.
type ErrorCode string

const (
	// ErrCodeFormat indicates a malformed command string.
	ErrCodeFormat ErrorCode = "FORMAT"

	// ErrCodeUnknownUnit indicates a unit outside the taxonomy.
	ErrCodeUnknownUnit ErrorCode = "UNKNOWN_UNIT"

	// ErrCodeInvalidConversion indicates a forbidden unit-type change.
	ErrCodeInvalidConversion ErrorCode = "INVALID_CONVERSION"

	// ErrCodeNotFound indicates the target parameter does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeDeleteRefused indicates the store kept a parameter it was asked
	// to delete.
	ErrCodeDeleteRefused ErrorCode = "DELETE_REFUSED"
)

// FormatError reports a malformed command or expression.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s (input %q)", ErrCodeFormat, e.Reason, e.Input)
}

// UnknownUnitError reports a unit suffix that is not in the taxonomy.
type UnknownUnitError struct {
	Input string
	Unit  string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("%s: invalid unit type %q (input %q)", ErrCodeUnknownUnit, e.Unit, e.Input)
}

// InvalidConversionError reports a unit change the editor refuses to make.
type InvalidConversionError struct {
	Name string
	From string
	To   string
}

func (e *InvalidConversionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s: cannot convert parameter %q from %q to no units; only unitless parameters can be converted to specific units",
			ErrCodeInvalidConversion, e.Name, e.From)
	}
	return fmt.Sprintf("%s: cannot convert parameter %q from %q to %q",
		ErrCodeInvalidConversion, e.Name, unitLabel(e.From), e.To)
}

// NotFoundError reports a missing parameter.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: parameter not found: %s", ErrCodeNotFound, e.Name)
}

// DeleteRefusedError reports a delete that did not take effect, either
// because the store returned an error or because the parameter was still
// present afterwards.
type DeleteRefusedError struct {
	Name string
	Err  error
}

func (e *DeleteRefusedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unable to delete parameter %s: %v", ErrCodeDeleteRefused, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: unable to delete parameter %s: still present after delete", ErrCodeDeleteRefused, e.Name)
}

func (e *DeleteRefusedError) Unwrap() error {
	return e.Err
}

// Code returns the ErrorCode of a parameter error, or "" if err is not one.
// Uses errors.As to handle wrapped errors.
func Code(err error) ErrorCode {
	var (
		fe  *FormatError
		ue  *UnknownUnitError
		ce  *InvalidConversionError
		ne  *NotFoundError
		dre *DeleteRefusedError
	)
	switch {
	case errors.As(err, &fe):
		return ErrCodeFormat
	case errors.As(err, &ue):
		return ErrCodeUnknownUnit
	case errors.As(err, &ce):
		return ErrCodeInvalidConversion
	case errors.As(err, &ne):
		return ErrCodeNotFound
	case errors.As(err, &dre):
		return ErrCodeDeleteRefused
	}
	return ""
}

// IsFormatError returns true if err is, or wraps, a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsUnknownUnitError returns true if err is, or wraps, an UnknownUnitError.
func IsUnknownUnitError(err error) bool {
	var ue *UnknownUnitError
	return errors.As(err, &ue)
}

// IsInvalidConversionError returns true if err is, or wraps, an
// InvalidConversionError.
func IsInvalidConversionError(err error) bool {
	var ce *InvalidConversionError
	return errors.As(err, &ce)
}

// IsNotFoundError returns true if err is, or wraps, a NotFoundError.
func IsNotFoundError(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsDeleteRefusedError returns true if err is, or wraps, a DeleteRefusedError.
func IsDeleteRefusedError(err error) bool {
	var dre *DeleteRefusedError
	return errors.As(err, &dre)
}

func unitLabel(unit string) string {
	if unit == "" {
		return "(no units)"
	}
	return unit
}
