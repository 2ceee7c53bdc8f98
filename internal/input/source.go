// internal/input/source.go
package input

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"

	"mitabmerge/internal/merge"
)

// StdinName is the argument that selects standard input.
const StdinName = "-"

// FileSource reads a local file, decompressing it if needed.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(context.Context) (io.ReadCloser, error) {
	fh, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	return decode(fh, s.Path)
}

// ReaderSource reads an already open stream such as standard input.
type ReaderSource struct {
	Label string
	R     io.Reader
}

func (s ReaderSource) Name() string { return s.Label }

func (s ReaderSource) Open(context.Context) (io.ReadCloser, error) {
	return decode(io.NopCloser(s.R), s.Label)
}

// ObjectSource reads one object from S3-compatible storage.
type ObjectSource struct {
	Client *minio.Client
	Bucket string
	Key    string
}

func (s ObjectSource) Name() string { return "s3://" + s.Bucket + "/" + s.Key }

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces missing objects and auth failures now.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
			return nil, fmt.Errorf("%w: %s", os.ErrNotExist, s.Name())
		}
		return nil, err
	}
	return decode(obj, s.Key)
}

// ParseObjectURL splits "s3://bucket/key" into its bucket and key.
func ParseObjectURL(u string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(u, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 URL: %q", u)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("s3 URL %q must name a bucket and an object key", u)
	}
	return bucket, key, nil
}

// IsObjectURL reports whether arg names an object store location.
func IsObjectURL(arg string) bool { return strings.HasPrefix(arg, "s3://") }

var _ merge.Source = FileSource{}
var _ merge.Source = ReaderSource{}
var _ merge.Source = ObjectSource{}
