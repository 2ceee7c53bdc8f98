// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"io"
	"os"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WritePretty writes v as indented JSON to path, or to stdio when path is "-".
func WritePretty(path string, stdio io.Writer, v any) error {
	if path == "-" {
		return EncodePretty(stdio, v)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePretty(fh, v); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
