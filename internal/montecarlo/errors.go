package montecarlo

import "fmt"

// InvalidParameterError reports a malformed or out-of-range scenario
// parameter. It is returned before any sampling begins.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// EmptyResultError reports a scenario result with no samples, which would
// produce misleading empty tables and plots downstream.
type EmptyResultError struct {
	Scenario string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("scenario %s produced no samples", e.Scenario)
}
