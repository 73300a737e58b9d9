package handshake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcceptTokenRFCExample(t *testing.T) {
	// The canonical RFC 6455 §1.3 worked example.
	got := AcceptToken("dGhlIHNhbXBsZSBub25jZQ==")
	require.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", got)
}

func TestResponseLiteralFormat(t *testing.T) {
	resp := Response("s3pPLMBiTxaQ9kYGzzhZRbK+xOo=")
	require.Equal(t,
		"HTTP/1.1 101 Switching Protocols\r\nUpgrade: websocket\r\nConnection: Upgrade\r\nSec-WebSocket-Accept: s3pPLMBiTxaQ9kYGzzhZRbK+xOo=\r\n\r\n",
		resp,
	)
}
