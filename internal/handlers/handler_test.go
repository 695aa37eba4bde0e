// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Most tests run against in-memory fakes; the Valkey-backed tests are
// skipped when Valkey is unavailable.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"footprints/internal/i18n"
	"footprints/internal/locations"
	"footprints/internal/metrics"
	"footprints/internal/middleware"
	"footprints/internal/models"
	"footprints/internal/render"
	"footprints/internal/session"
	"footprints/internal/viewer"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "resp:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// memSessions is an in-memory session store safe for concurrent use.
type memSessions struct {
	mu      sync.Mutex
	data    map[string]*session.Data
	created int
	saves   int
}

func newMemSessions() *memSessions {
	return &memSessions{data: make(map[string]*session.Data)}
}

func (m *memSessions) ID(r *http.Request) (string, bool) {
	c, err := r.Cookie(session.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (m *memSessions) Load(_ context.Context, id string) (*session.Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memSessions) Save(_ context.Context, id string, data *session.Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *data
	m.data[id] = &cp
	m.saves++
	return nil
}

func (m *memSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	m.mu.Lock()
	m.created++
	id := fmt.Sprintf("sess-%d", m.created)
	m.mu.Unlock()

	if err := m.Save(context.Background(), id, data); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: id, Path: "/"})
	return id, nil
}

func (m *memSessions) Destroy(_ context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := m.ID(r)
	if !ok {
		return nil
	}
	m.mu.Lock()
	delete(m.data, id)
	m.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "", Path: "/", MaxAge: -1})
	return nil
}

func (m *memSessions) state(id string) viewer.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[id].State
}

// fakeSource is a viewer.Source with a fixed snapshot.
type fakeSource struct {
	mu    sync.Mutex
	snap  locations.Snapshot
	ready bool
}

func (f *fakeSource) Snapshot() (locations.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.ready
}

// memCache is an in-memory ResponseCache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok
}

func (c *memCache) Set(_ context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = body
}

// testRecords is the dataset most handler tests run against.
func testRecords() []models.Record {
	return []models.Record{
		{Name: "北京", Description: "中国首都", Coordinates: models.Coordinates{116.4074, 39.9042}, VisitDate: "2022-05-10", Category: "城市"},
		{Name: "黄山", Description: "云海与奇松", Coordinates: models.Coordinates{118.1689, 30.1306}, VisitDate: "2023-10-01", Category: "自然景观"},
		{Name: "西安", Description: "兵马俑", Coordinates: models.Coordinates{108.9398, 34.3416}, VisitDate: "2023-04-15", Category: "历史遗迹"},
	}
}

func testSnapshot() locations.Snapshot {
	recs := testRecords()
	locs := make([]models.Location, len(recs))
	for i, r := range recs {
		locs[i] = r.Location(i + 1)
	}
	return locations.Snapshot{Locations: locs, Generation: 1, Source: "test"}
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Sessions *memSessions
	Locks    *session.Locks
	Source   *fakeSource
	Cache    *memCache
	Metrics  *metrics.Metrics
	Viewer   *Viewer
	API      *API
	Creator  *Creator
	Router   http.Handler
}

// newTestEnv creates a test environment whose source is ready when loaded
// is true.
func newTestEnv(t *testing.T, loaded bool) *testEnv {
	t.Helper()

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		Sessions: newMemSessions(),
		Locks:    session.NewLocks(),
		Source:   &fakeSource{snap: testSnapshot(), ready: loaded},
		Cache:    newMemCache(),
		Metrics:  metrics.New(),
	}
	opts := PageOptions{DefaultLang: i18n.Chinese, Tiles: render.Tiles{Light: "light", Dark: "dark"}}
	env.Viewer = NewViewer(renderer, env.Sessions, env.Locks, env.Source, env.Metrics, opts)
	env.API = NewAPI(env.Source, env.Cache, env.Metrics, i18n.Chinese)
	env.Creator = NewCreator(renderer, env.Metrics, opts)

	r := chi.NewRouter()
	r.Use(middleware.EnsureSession(env.Sessions, InitialState(i18n.Chinese)))
	r.Get("/", env.Viewer.Index)
	r.Get("/view", env.Viewer.Index)
	r.Get("/api/view", env.Viewer.APIView)
	r.Post("/events/lang", env.Viewer.SetLanguage)
	r.Post("/events/category", env.Viewer.SetCategory)
	r.Post("/events/year", env.Viewer.SetYear)
	r.Post("/events/search", env.Viewer.SetSearch)
	r.Post("/events/clear-filters", env.Viewer.ClearFilters)
	r.Post("/events/select/{id}", env.Viewer.Select)
	r.Post("/events/show-all", env.Viewer.ShowAll)
	r.Post("/events/viewport", env.Viewer.Viewport)
	r.Post("/events/scheme", env.Viewer.ColorScheme)
	r.Post("/events/toggle-list", env.Viewer.ToggleList)
	r.Post("/events/reset", env.Viewer.Reset)
	r.Get("/api/locations", env.API.Locations)
	r.Get("/api/locations/{id}/qr.png", env.API.ShareQR)
	r.Get("/creator", env.Creator.Page)
	r.Get("/api/creator/categories", env.Creator.Categories)
	r.Post("/api/creator/export", env.Creator.Export)
	env.Router = r

	return env
}

// client replays the session cookie across requests like a browser.
type client struct {
	t      *testing.T
	env    *testEnv
	cookie *http.Cookie
}

func (env *testEnv) client(t *testing.T) *client {
	return &client{t: t, env: env}
}

// do sends a request. form is sent url-encoded for POST requests.
func (c *client) do(method, target string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rr := httptest.NewRecorder()
	c.env.Router.ServeHTTP(rr, req)

	for _, ck := range rr.Result().Cookies() {
		if ck.Name == session.CookieName {
			c.cookie = ck
		}
	}
	return rr
}

// event posts an event asking for the JSON view and decodes it.
func (c *client) event(path string, form url.Values) (int, viewer.View) {
	c.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	rr := c.do(http.MethodPost, path, form, map[string]string{"Accept": "application/json"})
	var view viewer.View
	if rr.Code < 500 && strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
			c.t.Fatalf("decode view from %s: %v\n%s", path, err, rr.Body.String())
		}
	}
	return rr.Code, view
}

// sessionID returns the session ID the client carries.
func (c *client) sessionID() string {
	if c.cookie == nil {
		return ""
	}
	return c.cookie.Value
}
