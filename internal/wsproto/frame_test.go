package wsproto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		opcode  OpCode
	}{
		{"empty text", []byte{}, OpText},
		{"short text", []byte("hello"), OpText},
		{"short binary", []byte{0x01, 0x02, 0x03}, OpBinary},
		{"medium payload needs 16-bit length", bytes.Repeat([]byte{'x'}, 200), OpText},
		{"large payload needs 64-bit length", bytes.Repeat([]byte{'y'}, 70000), OpBinary},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wire := Encode(c.payload, c.opcode)
			frame, err := Decode(bytes.NewReader(wire))
			require.NoError(t, err)
			require.True(t, frame.IsFinal)
			require.Equal(t, c.opcode, frame.Opcode)
			require.Equal(t, c.payload, frame.Payload)
			require.Nil(t, frame.Mask)
		})
	}
}

func TestEncodeLengthHeaderLayout(t *testing.T) {
	wire := Encode(nil, OpText)
	require.Equal(t, []byte{0x81, 0x00}, wire)

	wire = Encode(bytes.Repeat([]byte{0}, 126), OpBinary)
	require.Equal(t, byte(0x82), wire[0])
	require.Equal(t, byte(126), wire[1])
	require.Equal(t, byte(0), wire[2])
	require.Equal(t, byte(126), wire[3])
}

func TestDecodeUnmasksClientFrame(t *testing.T) {
	mask := [4]byte{0xDE, 0xAD, 0xBE, 0xEF}
	payload := []byte("abcd")
	masked := make([]byte, len(payload))
	for i := range payload {
		masked[i] = payload[i] ^ mask[i%4]
	}

	wire := []byte{0x81, 0x80 | byte(len(payload))}
	wire = append(wire, mask[:]...)
	wire = append(wire, masked...)

	frame, err := Decode(bytes.NewReader(wire))
	require.NoError(t, err)
	require.Equal(t, payload, frame.Payload)
	require.NotNil(t, frame.Mask)
	require.Equal(t, mask, *frame.Mask)
}

func TestDecodeUnknownOpcodeIsFatal(t *testing.T) {
	wire := []byte{0x8F, 0x00}
	_, err := Decode(bytes.NewReader(wire))
	require.Error(t, err)
	require.False(t, ShouldRetry(err))
}

func TestDecodeShortReadIsRetryable(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0x81}))
	require.Error(t, err)
	require.True(t, ShouldRetry(err))
}
