// internal/output/sink.go
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// DefaultName is where merged lines go unless told otherwise.
	DefaultName = "merged.mitab"
	// StdoutName selects standard output.
	StdoutName = "-"
)

// Sink is a buffered, optionally compressed merge destination.
// Close flushes every layer; it must be called even after a failed run so
// the lines written so far reach the destination.
type Sink struct {
	name    string
	bw      *bufio.Writer
	closers []io.Closer
}

// Create truncates (or creates) name and returns a Sink writing to it.
// Names ending in .gz, .zst or .lz4 are compressed accordingly. StdoutName
// writes uncompressed to stdout, which is never closed.
func Create(name string, stdout io.Writer) (*Sink, error) {
	if name == StdoutName {
		return &Sink{name: "<stdout>", bw: bufio.NewWriterSize(stdout, 64<<10)}, nil
	}
	fh, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	s := &Sink{name: name}
	var w io.Writer = fh
	switch {
	case strings.HasSuffix(name, ".gz"):
		gw := gzip.NewWriter(fh)
		w, s.closers = gw, []io.Closer{gw}
	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(fh)
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		w, s.closers = zw, []io.Closer{zw}
	case strings.HasSuffix(name, ".lz4"):
		lw := lz4.NewWriter(fh)
		w, s.closers = lw, []io.Closer{lw}
	}
	s.closers = append(s.closers, fh)
	s.bw = bufio.NewWriterSize(w, 64<<10)
	return s, nil
}

// Name is the destination as shown to users.
func (s *Sink) Name() string { return s.name }

func (s *Sink) Write(p []byte) (int, error) { return s.bw.Write(p) }

// WriteString avoids a copy when the merger writes string lines.
func (s *Sink) WriteString(str string) (int, error) { return s.bw.WriteString(str) }

// Close flushes the buffer, finishes the compressed stream and closes the file.
// The first error wins.
func (s *Sink) Close() error {
	err := s.bw.Flush()
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
