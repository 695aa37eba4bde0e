// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package locations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"footprints/internal/models"
)

const threeLocations = `[
  {"name":"北京","description":"首都","coordinates":[116.4074,39.9042],"visitDate":"2022-05-10","category":"城市"},
  {"name":"黄山","description":"云海","coordinates":[118.1667,30.1333],"visitDate":"2019-10-01","category":"自然景观"},
  {"name":"西安","description":"兵马俑","coordinates":[108.94,34.34],"visitDate":"2023-04-02","category":"历史遗迹"}
]`

// stubSource returns fixed records or an error.
type stubSource struct {
	name    string
	records []models.Record
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Fetch(context.Context) ([]models.Record, error) {
	s.calls++
	return s.records, s.err
}

type stubDownloader struct {
	data []byte
	err  error
}

func (d stubDownloader) Download(context.Context, string, string) ([]byte, error) {
	return d.data, d.err
}

type stubLister struct {
	records []models.Record
	err     error
}

func (l stubLister) ListAll(context.Context) ([]models.Record, error) {
	return l.records, l.err
}

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestLoadFromHTTPAssignsIDs(t *testing.T) {
	srv := serve(http.StatusOK, threeLocations)
	defer srv.Close()

	s := NewStore(NewHTTPSource(srv.URL, time.Second))
	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if snap.Source != "http" {
		t.Errorf("source: got %q, want http", snap.Source)
	}
	if len(snap.Locations) != 3 {
		t.Fatalf("count: got %d, want 3", len(snap.Locations))
	}
	for i, loc := range snap.Locations {
		if loc.ID != i+1 {
			t.Errorf("location %d: ID got %d, want %d", i, loc.ID, i+1)
		}
	}
	if snap.Locations[2].Name != "西安" {
		t.Errorf("order not preserved: %+v", snap.Locations)
	}
}

func TestLoadFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, "missing"},
		{"server error", http.StatusInternalServerError, "boom"},
		{"invalid json", http.StatusOK, "{not json"},
		{"json null", http.StatusOK, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(tt.status, tt.body)
			defer srv.Close()

			s := NewStore(NewHTTPSource(srv.URL, time.Second))
			snap, err := s.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if snap.Source != FallbackSource {
				t.Errorf("source: got %q, want fallback", snap.Source)
			}
			if len(snap.Locations) != 2 || snap.Locations[0].Name != "北京" || snap.Locations[1].ID != 2 {
				t.Errorf("unexpected fallback data: %+v", snap.Locations)
			}
		})
	}
}

func TestLoadUnreachableFallsBack(t *testing.T) {
	srv := serve(http.StatusOK, threeLocations)
	url := srv.URL
	srv.Close()

	snap, err := NewStore(NewHTTPSource(url, time.Second)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Source != FallbackSource {
		t.Errorf("source: got %q, want fallback", snap.Source)
	}
}

func TestLoadEmptyArrayIsData(t *testing.T) {
	srv := serve(http.StatusOK, "[]")
	defer srv.Close()

	snap, _ := NewStore(NewHTTPSource(srv.URL, time.Second)).Load(context.Background())
	if snap.Source != "http" || len(snap.Locations) != 0 {
		t.Errorf("empty array should be used as-is, got source %q with %d", snap.Source, len(snap.Locations))
	}
}

func TestLoadTriesSourcesInOrder(t *testing.T) {
	failing := &stubSource{name: "first", err: errors.New("down")}
	working := &stubSource{name: "second", records: DefaultRecords()[:1]}
	unused := &stubSource{name: "third", records: DefaultRecords()}

	snap, _ := NewStore(failing, working, unused).Load(context.Background())

	if snap.Source != "second" || len(snap.Locations) != 1 {
		t.Errorf("got source %q with %d locations", snap.Source, len(snap.Locations))
	}
	if unused.calls != 0 {
		t.Error("sources after the first success should not be called")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	if err := os.WriteFile(path, []byte(threeLocations), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := (&FileSource{Path: path}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 3 || records[1].Coordinates.Lat() != 30.1333 {
		t.Errorf("unexpected records: %+v", records)
	}

	if _, err := (&FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}).Fetch(context.Background()); err == nil {
		t.Error("missing file should fail")
	}
}

func TestObjectAndDBSources(t *testing.T) {
	obj := &ObjectSource{Storage: stubDownloader{data: []byte(threeLocations)}, Bucket: "b", Key: "locations.json"}
	if records, err := obj.Fetch(context.Background()); err != nil || len(records) != 3 {
		t.Errorf("object source: %d records, err %v", len(records), err)
	}

	failingObj := &ObjectSource{Storage: stubDownloader{err: errors.New("no such key")}}
	if _, err := failingObj.Fetch(context.Background()); err == nil {
		t.Error("object source should propagate download errors")
	}

	db := &DBSource{Store: stubLister{records: DefaultRecords()}}
	if records, err := db.Fetch(context.Background()); err != nil || len(records) != 2 {
		t.Errorf("db source: %d records, err %v", len(records), err)
	}

	emptyDB := &DBSource{Store: stubLister{}}
	if _, err := emptyDB.Fetch(context.Background()); err == nil {
		t.Error("empty table should count as no data")
	}
}

func TestSnapshotWhileLoading(t *testing.T) {
	block := make(chan struct{})
	src := &blockingSource{release: block}
	s := NewStore(src)
	s.Start(context.Background())

	if _, ok := s.Snapshot(); ok {
		t.Error("snapshot should be unavailable while loading")
	}
	if _, err := s.ByID(1); !errors.Is(err, ErrLoading) {
		t.Errorf("ByID while loading: got %v, want ErrLoading", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := s.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait: got %v, want deadline exceeded", err)
	}

	close(block)
	snap, err := s.Wait(context.Background())
	if err != nil || len(snap.Locations) != 2 {
		t.Fatalf("Wait after release: %d locations, err %v", len(snap.Locations), err)
	}
}

func TestLoadsOnlyOnce(t *testing.T) {
	src := &stubSource{name: "stub", records: DefaultRecords()}
	var loaded int
	s := NewStore(src)
	s.OnLoad(func(Snapshot) { loaded++ })

	s.Load(context.Background())
	s.Start(context.Background())
	snap, _ := s.Load(context.Background())

	if src.calls != 1 || loaded != 1 {
		t.Errorf("source calls %d, OnLoad calls %d, want 1 and 1", src.calls, loaded)
	}
	if snap.Generation != 1 {
		t.Errorf("generation: got %d, want 1", snap.Generation)
	}
}

func TestByID(t *testing.T) {
	s := NewStore()
	s.Load(context.Background())

	loc, err := s.ByID(2)
	if err != nil || loc.Name != "上海" {
		t.Errorf("ByID(2) = %+v, %v", loc, err)
	}
	for _, id := range []int{0, -1, 3} {
		if _, err := s.ByID(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("ByID(%d): got %v, want ErrNotFound", id, err)
		}
	}
}

type blockingSource struct {
	release chan struct{}
}

func (b *blockingSource) Name() string { return "blocking" }
func (b *blockingSource) Fetch(context.Context) ([]models.Record, error) {
	<-b.release
	return DefaultRecords(), nil
}
