package errors

import (
	"fmt"
	"math"
)

// CheckNaN returns a ValidationError naming the first NaN in values.
// Infinities are accepted: they are valid interval bounds.
func CheckNaN(param string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) {
			return NewValidationError(param, fmt.Sprintf("NaN at position %d breaks the total order of values", i), v)
		}
	}
	return nil
}
