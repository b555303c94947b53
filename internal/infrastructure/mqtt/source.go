package mqtt

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// LineSource adapts an MQTT subscription into a byte stream.
//
// Field gateways publish raw telemetry lines to a topic; LineSource
// buffers the payloads and exposes them through the standard Read
// contract so the ingest line reader can consume MQTT traffic exactly
// as it consumes a serial port or a file:
//
//   - Read returns buffered bytes when available.
//   - Read returns (0, nil) when the source is open but no message has
//     arrived yet, which the reader treats as "poll again later".
//   - Read returns io.EOF once the source is closed and drained.
//
// Each message payload is terminated with a newline if the publisher
// did not include one, so a payload carrying a single record still
// frames as a complete line.
//
// Thread Safety:
//   - Feed, Read and Close are safe for concurrent use. Feed is called
//     from paho handler goroutines while Read runs on the ingest loop.
type LineSource struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

// NewLineSource creates an empty, open LineSource.
func NewLineSource() *LineSource {
	return &LineSource{}
}

// Feed appends a message payload to the buffer.
//
// A trailing newline is added when the payload does not end with one,
// so each MQTT message contributes at least one complete line.
// Payloads received after Close are discarded.
func (s *LineSource) Feed(payload []byte) {
	if len(payload) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.buf.Write(payload)
	if payload[len(payload)-1] != '\n' {
		s.buf.WriteByte('\n')
	}
}

// Read drains buffered bytes into p.
//
// Returns (0, nil) when the source is open with nothing buffered, and
// io.EOF once the source is closed and fully drained.
func (s *LineSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf.Len() == 0 {
		if s.closed {
			return 0, io.EOF
		}
		return 0, nil
	}

	return s.buf.Read(p)
}

// Close marks the source as closed.
//
// Buffered bytes remain readable; once drained, Read returns io.EOF.
// Close is idempotent.
func (s *LineSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// SubscribeLines subscribes the client to the given topic and feeds
// received payloads into a new LineSource.
//
// The returned source stays open until Close is called on it; losing
// the broker connection does not close the source, since the client
// replays the subscription on reconnect.
//
// At most one line source per topic: subscribing a topic that is
// already in the client's replay set fails rather than splitting the
// byte stream between two readers.
func SubscribeLines(client *Client, topic string, qos byte) (*LineSource, error) {
	if client.HasSubscription(topic) {
		return nil, fmt.Errorf("%w: already subscribed to %s", ErrSubscribeFailed, topic)
	}

	source := NewLineSource()

	err := client.Subscribe(topic, qos, func(_ string, payload []byte) error {
		source.Feed(payload)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return source, nil
}
