// internal/input/resolve.go
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mitabmerge/internal/merge"
)

// DefaultS3Endpoint is used when no endpoint is configured.
const DefaultS3Endpoint = "s3.amazonaws.com"

// S3Config describes the object store behind s3:// arguments.
type S3Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
	Insecure     bool
}

// ErrIsDir is returned when a local input names a directory.
var ErrIsDir = errors.New("is a directory")

// Resolver turns command-line input arguments into merge sources.
type Resolver struct {
	Stdin io.Reader
	S3    S3Config

	client *minio.Client
}

// Resolve maps each argument to a Source, in order. Local files are checked
// up front so a missing input fails the run before the output is touched.
// Object store inputs are checked when opened.
func (r *Resolver) Resolve(args []string) ([]merge.Source, error) {
	out := make([]merge.Source, 0, len(args))
	for _, a := range args {
		switch {
		case a == StdinName:
			stdin := r.Stdin
			if stdin == nil {
				stdin = os.Stdin
			}
			out = append(out, ReaderSource{Label: "<stdin>", R: stdin})
		case IsObjectURL(a):
			bucket, key, err := ParseObjectURL(a)
			if err != nil {
				return nil, err
			}
			cl, err := r.objectClient()
			if err != nil {
				return nil, err
			}
			out = append(out, ObjectSource{Client: cl, Bucket: bucket, Key: key})
		default:
			fi, err := os.Stat(a)
			if err != nil {
				return nil, err
			}
			if fi.IsDir() {
				return nil, fmt.Errorf("%s: %w", a, ErrIsDir)
			}
			out = append(out, FileSource{Path: a})
		}
	}
	return out, nil
}

func (r *Resolver) objectClient() (*minio.Client, error) {
	if r.client != nil {
		return r.client, nil
	}
	endpoint := r.S3.Endpoint
	if endpoint == "" {
		endpoint = DefaultS3Endpoint
	}
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(r.S3.AccessKey, r.S3.SecretKey, r.S3.SessionToken),
		Secure: !r.S3.Insecure,
		Region: r.S3.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	r.client = cl
	return cl, nil
}
