package ingest

// ByteSource is the borrowed byte stream the LineReader consumes.
//
// The contract mirrors a serial-like device rather than the usual
// io.Reader conventions:
//
//   - (n > 0, nil): n bytes were produced.
//   - (0, nil): nothing ready yet, the stream is still open. The
//     reader backs off and retries; it never treats this as an error.
//   - (0, io.EOF): the stream is closed. Surfaced as ErrStreamClosed.
//   - (0, err): the source failed. Surfaced as ErrStreamRead; the
//     ingestion loop terminates.
//
// The source is borrowed, never owned: opening and closing it belongs
// to whoever provided it. os.File and net.Conn both satisfy the
// interface; so does the MQTT line source adapter.
type ByteSource interface {
	Read(p []byte) (n int, err error)
}
