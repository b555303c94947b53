package influxdb

import "errors"

// Domain errors for the influxdb package.
//
// Use errors.Is() to classify failures:
//
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // integration switched off, run without the sink
//	}
var (
	// ErrNotConnected is returned by the sample sink once the client
	// has been closed.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed is returned when the connect-time ping
	// fails or reports an unhealthy server.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled is returned by Connect when the integration is
	// switched off in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
