// Package testutil provides testing utilities for the radio search client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// stations cycled through by the generated dataset.
var stations = []string{"jazz", "dig", "doublej", "unearthed", "country", "triplej", "classic", "kidslisten"}

// MockRadioAPI is a configurable mock of the ABC radio search endpoint.
// It serves a generated dataset of plays, honoring the offset and limit
// query parameters, and tracks the requests it receives.
type MockRadioAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	total    int

	// Tracking
	RequestCount int
	LastQuery    url.Values
}

// NewMockRadioAPI creates a mock server holding totalPlays plays.
func NewMockRadioAPI(totalPlays int) *MockRadioAPI {
	mock := &MockRadioAPI{
		handlers: make(map[string]http.HandlerFunc),
		total:    totalPlays,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.searchHandler(w, r)
	}))

	return mock
}

// SearchURL returns the mock search endpoint URL, suitable as a client
// BaseURL.
func (m *MockRadioAPI) SearchURL() string {
	return m.server.URL + "/api/v1/plays/search.json"
}

// Close shuts down the mock server.
func (m *MockRadioAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockRadioAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
}

// SetHandler sets a custom handler for a specific path, overriding the
// default search behavior.
func (m *MockRadioAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockRadioAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// searchHandler serves a page of the generated dataset.
func (m *MockRadioAPI) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset := intParam(q, "offset", 0)
	limit := intParam(q, "limit", 10)
	if limit > 100 {
		// The live API caps the effective limit.
		limit = 100
	}

	items := make([]map[string]any, 0, limit)
	for i := offset; i < offset+limit && i < m.total; i++ {
		items = append(items, playItem(i))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"total":  m.total,
		"offset": offset,
		"limit":  limit,
		"items":  items,
	})
}

// playItem generates the wire form of the i-th play in the dataset.
func playItem(i int) map[string]any {
	base := time.Date(2020, 4, 30, 3, 0, 0, 0, time.UTC)
	station := stations[i%len(stations)]

	return map[string]any{
		"entity":      "Play",
		"arid":        fmt.Sprintf("mock%06d", i),
		"played_time": base.Add(time.Duration(i) * 4 * time.Minute).Format("2006-01-02T15:04:05+00:00"),
		"service_id":  station,
		"recording": map[string]any{
			"title":    fmt.Sprintf("Track %03d", i),
			"duration": 180 + i%120,
			"links": []map[string]any{
				{"url": fmt.Sprintf("http://musicbrainz.org/recording/%06d", i)},
			},
			"releases": []any{},
		},
		"release": map[string]any{
			"title":        fmt.Sprintf("Album %03d", i/10),
			"release_year": "2020",
			"links":        []any{},
			"artists": []map[string]any{
				{
					"name":          fmt.Sprintf("Artist %03d", i%40),
					"is_australian": nil,
					"links":         []any{},
				},
			},
			"artwork": []any{},
		},
	}
}

// intParam parses an integer query parameter with a default.
func intParam(q url.Values, key string, def int) int {
	raw := q.Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
