// Package contenttype decides which parser a sample document needs.
package contenttype

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is the serialization of a sample document.
type Format string

const (
	Auto    Format = "auto"
	JSON    Format = "json"
	YAML    Format = "yaml"
	Unknown Format = ""
)

// ParseFormat validates a user-supplied format name. Empty means Auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", Auto:
		return Auto, nil
	case JSON, YAML:
		return f, nil
	}
	return Unknown, fmt.Errorf("unknown format %q (want auto, json or yaml)", s)
}

// FromMediaType classifies a content-type header value. Parameters such as
// charset are ignored; malformed values fall back to a lowercase match.
func FromMediaType(contentType string) Format {
	if contentType == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// application/json, application/vnd.*+json, application/x-ndjson
	if strings.Contains(mediaType, "json") {
		return JSON
	}
	// application/yaml, text/yaml, application/x-yaml
	if strings.Contains(mediaType, "yaml") {
		return YAML
	}
	return Unknown
}

// FromPath classifies a file by its extension.
func FromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "":
		return Unknown
	case ".json", ".jsonl", ".ndjson", ".geojson":
		return JSON
	case ".yaml", ".yml":
		return YAML
	}
	return FromMediaType(mime.TypeByExtension(ext))
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sniff guesses the format from the first bytes of a document. JSON is
// recognised by its leading token; any other valid UTF-8 text is treated as
// YAML, which is a superset for scalars and mappings.
func Sniff(data []byte) Format {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || !utf8.Valid(data) {
		return Unknown
	}

	switch c := data[0]; {
	case c == '{' || c == '[' || c == '"' || c == '-' && len(data) > 1 && isDigit(data[1]):
		return JSON
	case isDigit(c):
		return JSON
	}
	for _, lit := range []string{"true", "false", "null"} {
		if bytes.HasPrefix(data, []byte(lit)) && (len(data) == len(lit) || isSpace(data[len(lit)])) {
			return JSON
		}
	}
	return YAML
}

// Detect resolves the format of a document: an explicit content type wins,
// then the file extension, then sniffing.
func Detect(path, contentType string, data []byte) Format {
	if f := FromMediaType(contentType); f != Unknown {
		return f
	}
	if f := FromPath(path); f != Unknown {
		return f
	}
	return Sniff(data)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
