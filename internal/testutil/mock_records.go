// Package testutil provides testing utilities for the records client.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// MockResponse overrides what the mock server answers on /records.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockRecords is a fake /records server. By default it pages through its
// dataset the way the real endpoint does, honoring limit, offset and
// repeated color parameters.
type MockRecords struct {
	server *httptest.Server

	mu       sync.RWMutex
	dataset  []map[string]any
	override *MockResponse

	// Tracking
	RequestCount      int
	LastQuery         url.Values
	LastRequestHeader http.Header
}

// NewMockRecords starts a mock server serving dataset.
func NewMockRecords(dataset []map[string]any) *MockRecords {
	mock := &MockRecords{dataset: dataset}

	mux := http.NewServeMux()
	mux.HandleFunc("/records", mock.handle)
	mock.server = httptest.NewServer(mux)

	return mock
}

// URL returns the mock server root, without the /records path.
func (m *MockRecords) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockRecords) Close() {
	m.server.Close()
}

// SetResponse makes every following request answer with resp.
func (m *MockRecords) SetResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.override = &resp
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockRecords) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLastQuery returns the query of the most recent request.
func (m *MockRecords) GetLastQuery() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastQuery
}

// GetLastRequestHeader returns the headers of the most recent request.
func (m *MockRecords) GetLastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastRequestHeader
}

func (m *MockRecords) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.RequestCount++
	m.LastQuery = r.URL.Query()
	m.LastRequestHeader = r.Header.Clone()
	override := m.override
	m.mu.Unlock()

	if override != nil {
		if override.Delay > 0 {
			time.Sleep(override.Delay)
		}
		for key, value := range override.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(override.StatusCode)
		if override.Body != "" {
			w.Write([]byte(override.Body))
		}
		return
	}

	query := r.URL.Query()
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 0 {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	offset, err := strconv.Atoi(query.Get("offset"))
	if err != nil || offset < 0 {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}

	colors := map[string]bool{}
	for _, c := range query["color"] {
		if c != "" {
			colors[c] = true
		}
	}

	m.mu.RLock()
	matched := make([]map[string]any, 0, len(m.dataset))
	for _, rec := range m.dataset {
		if len(colors) > 0 {
			color, _ := rec["color"].(string)
			if !colors[color] {
				continue
			}
		}
		matched = append(matched, rec)
	}
	m.mu.RUnlock()

	page := []map[string]any{}
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		page = matched[offset:end]
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(page)
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       "404 page not found",
	}
}

// NewJSONResponse creates a 200 OK response with the given raw body.
func NewJSONResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// Dataset builds n records with ids 1..n, cycling through colors and
// alternating open/closed dispositions starting with open.
func Dataset(n int, colors ...string) []map[string]any {
	if len(colors) == 0 {
		colors = []string{"red", "brown", "blue", "yellow", "green"}
	}

	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		disposition := "open"
		if i%2 == 0 {
			disposition = "closed"
		}
		out = append(out, map[string]any{
			"id":          i,
			"color":       colors[(i-1)%len(colors)],
			"disposition": disposition,
		})
	}
	return out
}
