package sensor

import "github.com/oakensoul/sensorcore/internal/sample"

// Number constrains the sample representations supported by the
// aggregation rules.
type Number interface {
	~int64 | ~float64
}

// Aggregator reduces a sample history to a single summary scalar.
//
// Implementations are read-only over the history: summarizing is
// idempotent and has no side effects. Summarize requires at least one
// sample; an empty history yields ErrEmptyHistory.
type Aggregator[T Number] interface {
	Summarize(history *sample.Series[T]) (float64, error)
}

// Minimum summarizes a history as its smallest value, using the
// standard total order on the sample type. It is the aggregation rule
// for thermal devices.
type Minimum[T Number] struct{}

// Summarize returns the minimum value in the history.
func (Minimum[T]) Summarize(history *sample.Series[T]) (float64, error) {
	if history.IsEmpty() {
		return 0, ErrEmptyHistory
	}

	var min T
	first := true
	for v := range history.All() {
		if first || v < min {
			min = v
			first = false
		}
	}
	return float64(min), nil
}

// Mean summarizes a history as its arithmetic mean. The sum is
// accumulated in the sample's own representation, which is wide
// enough for realistic sample counts; the result is promoted to a
// fractional value even when individual samples are integral. It is
// the aggregation rule for barometric devices.
type Mean[T Number] struct{}

// Summarize returns the arithmetic mean of the history.
func (Mean[T]) Summarize(history *sample.Series[T]) (float64, error) {
	if history.IsEmpty() {
		return 0, ErrEmptyHistory
	}

	var sum T
	count := 0
	for v := range history.All() {
		sum += v
		count++
	}
	return float64(sum) / float64(count), nil
}
