package model

import (
	"fmt"
	"strconv"
)

// Percent is a percentage setting value, kept distinct from plain floats so
// that values like "10%" survive a settings round-trip unchanged.
type Percent float64

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}

// Fraction returns the percentage as a 0..1 fraction
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

// FormatValue renders a directive argument the way it would appear in a script
func FormatValue(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return actual
	case fmt.Stringer:
		return actual.String()
	default:
		return fmt.Sprintf("%v", actual)
	}
}
