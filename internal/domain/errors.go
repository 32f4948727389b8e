package domain

import "errors"

// Diagnostic messages surfaced to callers when a product cannot be
// forecast. These mirror what the reporting UI shows next to skipped rows.
const (
	ReasonNoData       = "Not enough data"
	ReasonShortHistory = "Requires >15 months of history for high accuracy"
)

// InsufficientDataError reports that a product's sales history cannot
// support a forecast. It is a non-fatal, per-product condition: callers
// skip the product or surface the reason, never abort the batch.
type InsufficientDataError struct {
	ProductName string
	Reason      string
}

func (e *InsufficientDataError) Error() string {
	return e.Reason
}

// IsInsufficientData reports whether err is a data-insufficiency
// diagnostic rather than a real failure.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}
