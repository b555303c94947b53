package sensor

import (
	"fmt"
	"iter"
	"sync"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is the ordered, in-memory collection of device records.
//
// Records are kept in registration order; traversal yields
// first-registered devices first. Lookup is a linear scan, which is
// deliberate: device counts are small and insertion order is the
// primary contract. The registry exclusively owns every record it
// holds; Clear releases them all.
//
// The mutex is a single-writer discipline around the ordered slice.
// The ingestion pipeline is single-threaded today, but Record holds
// the lock across its lookup and insert so the find-or-create step
// stays atomic if callers ever move off one goroutine.
type Registry struct {
	mu      sync.Mutex
	devices []Device
	logger  Logger
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{logger: noopLogger{}}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Register creates a device record with no initial sample.
//
// Registering an identifier that already exists with the same kind
// returns the existing record; registering it with a different kind
// fails with ErrKindMismatch. At most one record per identifier ever
// exists.
func (r *Registry) Register(id string, kind Kind) (Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findLocked(id); existing != nil {
		if existing.Kind() != kind {
			return nil, fmt.Errorf("%w: device %q is %s, not %s",
				ErrKindMismatch, id, existing.Kind(), kind)
		}
		return existing, nil
	}

	dev, err := NewDevice(id, kind)
	if err != nil {
		return nil, err
	}
	r.devices = append(r.devices, dev)

	r.logger.Info("device registered", "id", id, "kind", kind)
	return dev, nil
}

// Record applies one decoded sample: create-or-update keyed on the
// identifier.
//
// A new identifier creates a record of the value's kind holding that
// one sample. An existing identifier with a matching kind gets the
// value appended to its history. An existing identifier with a
// different kind fails with ErrKindMismatch and the record is not
// mutated. The lookup and conditional insert happen under one lock
// acquisition.
func (r *Registry) Record(id string, v Value) (Device, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findLocked(id); existing != nil {
		if err := existing.Append(v); err != nil {
			return nil, fmt.Errorf("device %q: %w", id, err)
		}
		r.logger.Debug("sample appended", "id", id, "value", v.String(), "samples", existing.Len())
		return existing, nil
	}

	dev, err := NewDevice(id, v.Kind())
	if err != nil {
		return nil, err
	}
	if err := dev.Append(v); err != nil {
		return nil, err
	}
	r.devices = append(r.devices, dev)

	r.logger.Info("device registered from stream", "id", id, "kind", v.Kind(), "value", v.String())
	return dev, nil
}

// Find returns the record for the identifier, or false if no device
// with that identifier exists.
func (r *Registry) Find(id string) (Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dev := r.findLocked(id); dev != nil {
		return dev, true
	}
	return nil, false
}

// findLocked scans for an identifier. Caller must hold r.mu.
func (r *Registry) findLocked(id string) Device {
	for _, dev := range r.devices {
		if dev.ID() == id {
			return dev
		}
	}
	return nil
}

// All returns a lazy, restartable traversal over every record in
// registration order. The traversal is read-only with respect to
// registry structure; it observes the membership at the time All is
// ranged over.
func (r *Registry) All() iter.Seq[Device] {
	return func(yield func(Device) bool) {
		r.mu.Lock()
		snapshot := r.devices
		r.mu.Unlock()

		for _, dev := range snapshot {
			if !yield(dev) {
				return
			}
		}
	}
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}

// Clear releases every device record. It is idempotent and safe to
// call on an already-empty registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	count := len(r.devices)
	r.devices = nil
	r.mu.Unlock()

	if count > 0 {
		r.logger.Info("registry cleared", "devices", count)
	}
}
