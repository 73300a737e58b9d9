package wsproto

import (
	"io"
	"sync"
)

// Writer serializes outbound payloads into single final frames with
// the correct length header and flushes them to the underlying
// connection. It is safe for concurrent use; writes are serialized
// with a mutex so that interleaved frames from different goroutines
// never corrupt the wire.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps a connection's write half.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteText sends s as a single final TEXT frame.
func (wr *Writer) WriteText(s string) error {
	return wr.write([]byte(s), OpText)
}

// WriteBytes sends b as a single final BINARY frame.
func (wr *Writer) WriteBytes(b []byte) error {
	return wr.write(b, OpBinary)
}

func (wr *Writer) write(payload []byte, opcode OpCode) error {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	_, err := wr.w.Write(Encode(payload, opcode))
	return err
}
