// Package httpparse parses an HTTP/1.x request line and headers out
// of a bounded byte buffer, with no streaming continuation: the
// entire request must already be present in the buffer.
package httpparse

import (
	"bufio"
	"bytes"
	"fmt"
)

var allowedMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"TRACE":   true,
	"OPTIONS": true,
	"CONNECT": true,
	"PATCH":   true,
}

// Request is a parsed HTTP/1.x request.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers map[string]string
}

// Header looks up a header by exact (case-sensitive) name, matching
// this runtime's deliberately case-sensitive lookup discipline.
func (r Request) Header(name string) (string, bool) {
	v, ok := r.Headers[name]
	return v, ok
}

// Parse reads one HTTP request from buf. It never reads beyond buf;
// an incomplete or malformed request is a parse failure.
func Parse(buf []byte) (Request, error) {
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Buffer(make([]byte, 0, len(buf)+1), len(buf)+1)

	if !scanner.Scan() {
		return Request{}, fmt.Errorf("httpparse: empty request")
	}
	method, target, version, err := parseRequestLine(scanner.Text())
	if err != nil {
		return Request{}, err
	}

	headers := make(map[string]string)
	sawBlankLine := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			sawBlankLine = true
			break
		}
		name, value, err := parseHeaderLine(line)
		if err != nil {
			return Request{}, err
		}
		headers[name] = value
	}
	if err := scanner.Err(); err != nil {
		return Request{}, fmt.Errorf("httpparse: %w", err)
	}
	if !sawBlankLine {
		return Request{}, fmt.Errorf("httpparse: request missing terminating blank line")
	}

	return Request{Method: method, Target: target, Version: version, Headers: headers}, nil
}

func parseRequestLine(line string) (method, target, version string, err error) {
	parts := bytes.Fields([]byte(line))
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("httpparse: malformed request line %q", line)
	}
	method = string(parts[0])
	if !allowedMethods[method] {
		return "", "", "", fmt.Errorf("httpparse: unrecognized method %q", method)
	}
	return method, string(parts[1]), string(parts[2]), nil
}

func parseHeaderLine(line string) (name, value string, err error) {
	idx := bytes.IndexByte([]byte(line), ':')
	if idx < 0 {
		return "", "", fmt.Errorf("httpparse: malformed header line %q", line)
	}
	name = line[:idx]
	value = bytes.NewBuffer(bytes.TrimSpace([]byte(line[idx+1:]))).String()
	return name, value, nil
}
