package calculator

import "fmt"

// InsufficientDataError is returned when a series is too short to compute anything.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d bars, need at least %d", e.Have, e.Need)
}

// MalformedBarError reports the first invalid bar found in a series.
type MalformedBarError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedBarError) Error() string {
	return fmt.Sprintf("malformed bar %d: %s %s", e.Index, e.Field, e.Reason)
}
