package ingest

import "errors"

// Domain errors for the ingest package.
//
// Use errors.Is() to classify failures coming out of the pipeline:
//
//	if errors.Is(err, ingest.ErrStreamRead) {
//	    // source failed, loop has terminated
//	}
var (
	// ErrDecode is returned when a line cannot be parsed into a valid
	// record: missing token, unrecognised kind tag, or a value whose
	// representation does not match the kind. Non-fatal; the line is
	// dropped and processing continues.
	ErrDecode = errors.New("ingest: malformed record")

	// ErrStreamClosed is returned by the LineReader when the byte
	// source reports end of stream.
	ErrStreamClosed = errors.New("ingest: stream closed")

	// ErrStreamRead is returned when the byte source fails. Fatal to
	// the ingestion loop; there is no auto-reconnect.
	ErrStreamRead = errors.New("ingest: stream read failed")
)
