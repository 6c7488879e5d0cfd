package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is a request received by the ApiMock.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
}

type stub struct {
	method string
	path   string
	query  map[string]string // Every listed parameter must match
	status int
	body   any
}

// ApiMock is a stand-in for an external HTTP API. Stubs are matched in the
// order they were added; unmatched requests get the default response.
type ApiMock struct {
	mu             sync.Mutex
	server         *httptest.Server
	stubs          []stub
	requests       []Request
	defaultStatus  int
	defaultPayload any
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		defaultStatus:  http.StatusNotFound,
		defaultPayload: map[string]any{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	query := map[string]string{}
	for key, values := range r.URL.Query() {
		query[key] = values[0]
	}

	a.mu.Lock()
	a.requests = append(a.requests, Request{Method: r.Method, Path: r.URL.Path, Query: query})
	status, body := a.defaultStatus, a.defaultPayload
	for _, s := range a.stubs {
		if s.matches(r.Method, r.URL.Path, query) {
			status, body = s.status, s.body
			break
		}
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s stub) matches(method, path string, query map[string]string) bool {
	if s.method != method || s.path != path {
		return false
	}
	for key, value := range s.query {
		if query[key] != value {
			return false
		}
	}
	return true
}

// SetResponse answers requests to method and path whose query contains every
// entry of query.
func (a *ApiMock) SetResponse(method, path string, query map[string]string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stubs = append(a.stubs, stub{method: method, path: path, query: query, status: status, body: body})
}

// SetDefaultResponse answers requests that match no stub.
func (a *ApiMock) SetDefaultResponse(status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaultStatus = status
	a.defaultPayload = body
}

// GetRequests returns the requests received for method and path.
func (a *ApiMock) GetRequests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	var matched []Request
	for _, r := range a.requests {
		if r.Method == method && r.Path == path {
			matched = append(matched, r)
		}
	}
	return matched
}

// Reset drops every stub and recorded request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stubs = nil
	a.requests = nil
	a.defaultStatus = http.StatusNotFound
	a.defaultPayload = map[string]any{}
}
