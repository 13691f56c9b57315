package utils

import (
	"bytes"
	"encoding/json"
)

// EncodeStringList renders list as a compact JSON array (`["a","b"]`).
// Non-ASCII text and HTML characters are written as-is; a nil list encodes as
// "[]". Invalid UTF-8 is replaced with U+FFFD, so only valid UTF-8 strings
// round-trip through DecodeStringList unchanged.
func EncodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// DecodeStringList parses text written by EncodeStringList. Empty text and
// JSON null decode to an empty list.
func DecodeStringList(text string) ([]string, error) {
	list := []string{}
	if text == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
