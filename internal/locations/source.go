// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package locations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"footprints/internal/models"
)

// errNoData is returned when a source holds a JSON null instead of an array.
var errNoData = errors.New("no location data")

// maxBodySize caps how much of a remote locations file is read.
const maxBodySize = 10 << 20

// Source yields location records from one backing location.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Record, error)
}

// decode parses a locations.json array. A JSON null counts as no data; an
// empty array is valid data.
func decode(data []byte) ([]models.Record, error) {
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	if records == nil {
		return nil, errNoData
	}
	return records, nil
}

// HTTPSource fetches locations.json over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTP source with the given request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Name() string { return "http" }

// Fetch requests the URL. Any non-2xx status counts as a missing file.
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("locations request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("locations http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("locations http: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("locations read body: %w", err)
	}
	return decode(body)
}

// FileSource reads locations.json from the local filesystem.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(_ context.Context) ([]models.Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return decode(data)
}

// ObjectDownloader downloads an object from S3-compatible storage.
type ObjectDownloader interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// ObjectSource reads locations.json from an object store bucket.
type ObjectSource struct {
	Storage ObjectDownloader
	Bucket  string
	Key     string
}

func (s *ObjectSource) Name() string { return "s3" }

func (s *ObjectSource) Fetch(ctx context.Context) ([]models.Record, error) {
	data, err := s.Storage.Download(ctx, s.Bucket, s.Key)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// RecordLister lists stored location records in display order.
type RecordLister interface {
	ListAll(ctx context.Context) ([]models.Record, error)
}

// DBSource reads location rows from the database.
type DBSource struct {
	Store RecordLister
}

func (s *DBSource) Name() string { return "postgres" }

func (s *DBSource) Fetch(ctx context.Context) ([]models.Record, error) {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errNoData
	}
	return records, nil
}
