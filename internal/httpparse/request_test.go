package httpparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUpgradeRequest(t *testing.T) {
	raw := "GET /pusoy HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\n" +
		"Upgrade: websocket\r\n" +
		"\r\n"

	req, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "/pusoy", req.Target)
	key, ok := req.Header("Sec-WebSocket-Key")
	require.True(t, ok)
	require.Equal(t, "dGhlIHNhbXBsZSBub25jZQ==", key)
}

func TestParseRejectsUnknownMethod(t *testing.T) {
	_, err := Parse([]byte("FROB / HTTP/1.1\r\n\r\n"))
	require.Error(t, err)
}

func TestParseRejectsMissingBlankLine(t *testing.T) {
	_, err := Parse([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))
	require.Error(t, err)
}

func TestParseHeaderLookupIsCaseSensitive(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nSec-WebSocket-Key: abc\r\n\r\n"
	req, err := Parse([]byte(raw))
	require.NoError(t, err)

	_, ok := req.Header("sec-websocket-key")
	require.False(t, ok)
}
