package mastersheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/smartpick/picklist/internal/types"
)

// GCSSource reads a master snapshot stored in Cloud Storage. Objects ending
// in .csv are read as CSV, everything else as a workbook.
type GCSSource struct {
	Bucket   string
	Object   string
	Encoding string

	opts []option.ClientOption
}

// NewGCSSource creates a source. Without options the client uses
// Application Default Credentials.
func NewGCSSource(bucket, object, encoding string, opts ...option.ClientOption) *GCSSource {
	return &GCSSource{Bucket: bucket, Object: object, Encoding: encoding, opts: opts}
}

// Fetch implements Source.
func (s *GCSSource) Fetch(ctx context.Context) (types.MasterTable, error) {
	data, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	return decodeObject(s.Object, data, s.Encoding)
}

// Describe implements Source.
func (s *GCSSource) Describe() string {
	return fmt.Sprintf("gs://%s/%s", s.Bucket, s.Object)
}

func (s *GCSSource) download(ctx context.Context) ([]byte, error) {
	client, err := storage.NewClient(ctx, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(s.Bucket).Object(s.Object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

// decodeObject picks the decoder by object extension.
func decodeObject(object string, data []byte, encoding string) (types.MasterTable, error) {
	if strings.EqualFold(path.Ext(object), ".csv") {
		return ReadCSV(bytes.NewReader(data), encoding)
	}
	return ReadXLSX(bytes.NewReader(data), "")
}
