// Package wsproto implements the RFC 6455 WebSocket wire protocol:
// frame encoding/decoding, message coalescing, and message writing,
// entirely by hand. The handshake accept-key computation lives in
// package handshake.
package wsproto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// OpCode is the low 4 bits of the first frame header byte.
type OpCode byte

const (
	OpContinue OpCode = 0x0
	OpText     OpCode = 0x1
	OpBinary   OpCode = 0x2
	OpClose    OpCode = 0x8
	OpPing     OpCode = 0x9
	OpPong     OpCode = 0xA
)

func (op OpCode) String() string {
	switch op {
	case OpContinue:
		return "continue"
	case OpText:
		return "text"
	case OpBinary:
		return "binary"
	case OpClose:
		return "close"
	case OpPing:
		return "ping"
	case OpPong:
		return "pong"
	default:
		return fmt.Sprintf("opcode(0x%x)", byte(op))
	}
}

// Frame is one decoded WebSocket frame.
type Frame struct {
	IsFinal bool
	Opcode  OpCode
	Payload []byte
	// Mask is nil for unmasked (server→client) frames.
	Mask *[4]byte
}

// DecodeError classifies a frame decode failure.
type DecodeError struct {
	Retryable bool
	Reason    string
}

func (e *DecodeError) Error() string { return e.Reason }

func fatal(reason string) *DecodeError   { return &DecodeError{Retryable: false, Reason: reason} }
func retryable(reason string) *DecodeError { return &DecodeError{Retryable: true, Reason: reason} }

// Encode serializes payload as a single final frame of the given
// opcode, unmasked, with the correct 3-tier length header.
func Encode(payload []byte, opcode OpCode) []byte {
	n := len(payload)
	out := make([]byte, 0, n+10)
	out = append(out, 0x80|byte(opcode))

	switch {
	case n <= 125:
		out = append(out, byte(n))
	case n <= 65535:
		var ext [2]byte
		binary.BigEndian.PutUint16(ext[:], uint16(n))
		out = append(out, 126)
		out = append(out, ext[:]...)
	default:
		var ext [8]byte
		binary.BigEndian.PutUint64(ext[:], uint64(n))
		out = append(out, 127)
		out = append(out, ext[:]...)
	}

	return append(out, payload...)
}

// Decode reads exactly one frame from r. Client frames are expected
// to be masked; the payload is unmasked in place before being
// returned.
func Decode(r io.Reader) (Frame, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Frame{}, retryable("short read on frame header")
		}
		return Frame{}, err
	}

	isFinal := head[0]&0x80 != 0
	opcode := OpCode(head[0] & 0x0F)
	switch opcode {
	case OpContinue, OpText, OpBinary, OpClose, OpPing, OpPong:
	default:
		return Frame{}, fatal(fmt.Sprintf("unknown opcode 0x%x", byte(opcode)))
	}

	masked := head[1]&0x80 != 0
	length := uint64(head[1] & 0x7F)

	switch length {
	case 126:
		var ext [2]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return Frame{}, fatal("short read on extended length")
		}
		length = uint64(binary.BigEndian.Uint16(ext[:]))
	case 127:
		var ext [8]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return Frame{}, fatal("short read on extended length")
		}
		length = binary.BigEndian.Uint64(ext[:])
	}

	var mask *[4]byte
	if masked {
		var m [4]byte
		if _, err := io.ReadFull(r, m[:]); err != nil {
			return Frame{}, fatal("short read on masking key")
		}
		mask = &m
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, fatal("short read on payload")
		}
	}

	if mask != nil {
		for i := range payload {
			payload[i] ^= mask[i%4]
		}
	}

	return Frame{IsFinal: isFinal, Opcode: opcode, Payload: payload, Mask: mask}, nil
}

// ShouldRetry reports whether a decode error is a retryable
// buffer-underrun rather than a fatal protocol violation.
func ShouldRetry(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Retryable
	}
	return false
}
