package alsmatrix

import (
	"fmt"
	"strings"
)

// NotFoundError reports a worksheet or matrix that could not be located by the
// resolution rules. Available carries the names that were present so callers
// can surface them to the requester.
type NotFoundError struct {
	Kind      string // "sheet" or "matrix"
	Requested string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found; available: [%s]", e.Kind, e.Requested, strings.Join(e.Available, ", "))
}

// MalformedInputError reports workbook bytes that could not be decoded.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed workbook: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed workbook: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
