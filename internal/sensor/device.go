package sensor

import (
	"fmt"
	"iter"

	"github.com/oakensoul/sensorcore/internal/sample"
)

// Device is a registry record: an identifier, a kind, the ordered
// sample history and the kind's aggregation rule. The identifier is
// opaque, case-sensitive and immutable after creation. Each concrete
// variant owns its history exclusively; the history is released with
// the record.
//
// Dispatch is by the kind tag through this closed interface; there is
// no type-identity checking anywhere in the registry.
type Device interface {
	// ID returns the device identifier.
	ID() string

	// Kind returns the device kind.
	Kind() Kind

	// Len returns the number of samples in the history.
	Len() int

	// IsEmpty reports whether the history has no samples.
	IsEmpty() bool

	// Append adds a sample to the end of the history. It fails with
	// ErrKindMismatch if the value's representation does not match
	// the device kind; the history is left untouched in that case.
	Append(v Value) error

	// Summarize reduces the history to the kind's summary scalar:
	// minimum for thermal, arithmetic mean for barometric. An empty
	// history yields ErrEmptyHistory; callers check IsEmpty first.
	Summarize() (float64, error)

	// Values returns a lazy, restartable, insertion-order traversal
	// of the history.
	Values() iter.Seq[Value]

	// Clone returns a fully independent copy of the record. The
	// clone's history shares no storage with the original.
	Clone() Device
}

// NewDevice creates an empty device record of the given kind.
func NewDevice(id string, kind Kind) (Device, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	switch kind {
	case KindThermal:
		return &thermalDevice{id: id, history: sample.New[float64]()}, nil
	case KindBarometric:
		return &barometricDevice{id: id, history: sample.New[int64]()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

// thermalDevice stores fractional readings and summarizes them as the
// minimum observed value.
type thermalDevice struct {
	id      string
	history *sample.Series[float64]
	agg     Minimum[float64]
}

func (d *thermalDevice) ID() string    { return d.id }
func (d *thermalDevice) Kind() Kind    { return KindThermal }
func (d *thermalDevice) Len() int      { return d.history.Len() }
func (d *thermalDevice) IsEmpty() bool { return d.history.IsEmpty() }

func (d *thermalDevice) Append(v Value) error {
	if v.Kind() != KindThermal {
		return fmt.Errorf("%w: %s sample for thermal device %q", ErrKindMismatch, v.Kind(), d.id)
	}
	d.history.Append(v.Float())
	return nil
}

func (d *thermalDevice) Summarize() (float64, error) {
	return d.agg.Summarize(d.history)
}

func (d *thermalDevice) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for v := range d.history.All() {
			if !yield(Thermal(v)) {
				return
			}
		}
	}
}

func (d *thermalDevice) Clone() Device {
	return &thermalDevice{id: d.id, history: d.history.Clone()}
}

// barometricDevice stores whole-number readings and summarizes them
// as the arithmetic mean.
type barometricDevice struct {
	id      string
	history *sample.Series[int64]
	agg     Mean[int64]
}

func (d *barometricDevice) ID() string    { return d.id }
func (d *barometricDevice) Kind() Kind    { return KindBarometric }
func (d *barometricDevice) Len() int      { return d.history.Len() }
func (d *barometricDevice) IsEmpty() bool { return d.history.IsEmpty() }

func (d *barometricDevice) Append(v Value) error {
	if v.Kind() != KindBarometric {
		return fmt.Errorf("%w: %s sample for barometric device %q", ErrKindMismatch, v.Kind(), d.id)
	}
	d.history.Append(v.Int())
	return nil
}

func (d *barometricDevice) Summarize() (float64, error) {
	return d.agg.Summarize(d.history)
}

func (d *barometricDevice) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for v := range d.history.All() {
			if !yield(Barometric(v)) {
				return
			}
		}
	}
}

func (d *barometricDevice) Clone() Device {
	return &barometricDevice{id: d.id, history: d.history.Clone()}
}
