package sensor

import (
	"fmt"
	"strconv"
)

// Kind classifies a measurement device and fixes both the numeric
// representation of its samples and the aggregation rule applied to
// its history. The set is closed; adding a kind means adding a new
// device variant and its aggregation rule.
type Kind string

// Device kinds.
const (
	// KindThermal devices report fractional readings; their summary
	// is the minimum value observed.
	KindThermal Kind = "thermal"

	// KindBarometric devices report whole-number readings; their
	// summary is the arithmetic mean, always fractional.
	KindBarometric Kind = "barometric"
)

// Valid reports whether the kind is a recognised device kind.
func (k Kind) Valid() bool {
	switch k {
	case KindThermal, KindBarometric:
		return true
	default:
		return false
	}
}

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Value is a single typed measurement. The payload representation is
// dictated by the kind: thermal values carry a float64, barometric
// values carry an int64. Representations are never mixed within one
// device history.
//
// Value is a small immutable sum type; construct instances with
// Thermal or Barometric.
type Value struct {
	kind Kind
	f    float64
	n    int64
}

// Thermal creates a thermal (fractional) measurement value.
func Thermal(v float64) Value {
	return Value{kind: KindThermal, f: v}
}

// Barometric creates a barometric (whole-number) measurement value.
func Barometric(v int64) Value {
	return Value{kind: KindBarometric, n: v}
}

// Kind returns the kind the value was constructed for.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the thermal payload. Meaningful only when
// Kind() == KindThermal.
func (v Value) Float() float64 {
	return v.f
}

// Int returns the barometric payload. Meaningful only when
// Kind() == KindBarometric.
func (v Value) Int() int64 {
	return v.n
}

// Scalar returns the measurement as a float64 regardless of kind.
// Used by sinks that record every sample in one numeric column.
func (v Value) Scalar() float64 {
	if v.kind == KindBarometric {
		return float64(v.n)
	}
	return v.f
}

// String formats the value with its kind-appropriate representation.
func (v Value) String() string {
	switch v.kind {
	case KindBarometric:
		return strconv.FormatInt(v.n, 10)
	case KindThermal:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return fmt.Sprintf("invalid(%v)", v.kind)
	}
}
