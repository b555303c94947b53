// Package sensor provides the device registry for sensorcore.
//
// The registry is the in-memory catalogue of every measurement device
// seen during a run. Each device record holds an identifier, a kind,
// an ordered sample history and the aggregation rule for that kind.
// The registry is rebuilt from the telemetry stream on every run; no
// state survives a restart.
//
// # Key Types
//
//   - Kind: closed set of device kinds (thermal, barometric). The kind
//     fixes the numeric representation of samples and the aggregation
//     rule applied to the history.
//   - Value: a single typed measurement (float for thermal, integer
//     for barometric).
//   - Device: a registry record owning its sample history.
//   - Registry: ordered collection of devices with find-or-create
//     semantics keyed on identifier.
//   - SQLiteSampleArchive: optional audit trail of accepted samples.
//
// # Usage
//
//	registry := sensor.NewRegistry()
//	registry.SetLogger(log)
//
//	// Create-or-update from a decoded telemetry record.
//	dev, err := registry.Record("TEMP-001", sensor.Thermal(25.5))
//	if err != nil {
//	    return err
//	}
//
//	// Summarize a device's history.
//	if !dev.IsEmpty() {
//	    min, _ := dev.Summarize()
//	    log.Info("thermal minimum", "device", dev.ID(), "value", min)
//	}
//
//	// Insertion-order traversal.
//	for dev := range registry.All() {
//	    log.Info("device", "id", dev.ID(), "samples", dev.Len())
//	}
//
// # Invariants
//
// Exactly one device record exists per identifier at any time. Record
// holds the registry lock across lookup and insert, so the
// find-or-create step cannot race even if callers are ever moved off
// a single goroutine. A device's identifier and kind are immutable
// after creation; reusing an identifier with a different kind fails
// with ErrKindMismatch and leaves the existing history untouched.
package sensor
