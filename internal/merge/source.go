package merge

import (
	"context"
	"io"
)

// Source is one named input stream.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

type readerSource struct {
	name string
	r    io.Reader
}

// FromReader wraps an already open reader as a Source. Open hands out r
// itself, so the Source can be consumed once.
func FromReader(name string, r io.Reader) Source {
	return &readerSource{name: name, r: r}
}

func (s *readerSource) Name() string { return s.name }

func (s *readerSource) Open(context.Context) (io.ReadCloser, error) {
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}
