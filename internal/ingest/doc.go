// Package ingest implements the telemetry ingestion pipeline for
// sensorcore.
//
// The pipeline consumes raw bytes from a borrowed byte source, frames
// them into lines, decodes each line into a typed record and applies
// it to the device registry:
//
//	byte source → LineReader → Decode → Registry.Record → sinks
//
// # Line protocol
//
// One record per line, ASCII, terminated by \n or \r:
//
//	<KIND> <ID> <VALUE>
//
// KIND is a single character: T or t for thermal, P or p for
// barometric. VALUE is a decimal fraction for thermal records and an
// integer for barometric records. Examples:
//
//	T TEMP-001 25.5
//	P PRES-100 101325
//
// Device banner lines (startup diagnostics matching configured marker
// substrings) are discarded by the LineReader before decoding.
//
// # Error model
//
// Malformed lines (ErrDecode) and identifier/kind conflicts are
// recovered locally: the pipeline logs a diagnostic naming the
// offending line or identifier and continues with the next line. A
// source read failure (ErrStreamRead) is fatal to the run and is
// surfaced to the caller; there is no auto-reconnect. End of stream
// (ErrStreamClosed) and context cancellation end the run cleanly.
//
// The pipeline is single-threaded and synchronous; its only
// suspension point is the LineReader's bounded poll backoff while the
// source has no bytes ready.
package ingest
