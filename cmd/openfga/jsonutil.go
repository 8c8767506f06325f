package main

import (
	"bytes"
	"encoding/json"
)

// indentJSON re-indents compact JSON using the configured indent string.
func indentJSON(data []byte, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
