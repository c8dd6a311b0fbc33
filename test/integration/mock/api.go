package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock records requests to an external HTTP API and answers with
// programmed responses. Responses are keyed by method+path; a response set
// for index -1 is the default for that route.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]RecordedRequest
	responses map[string]map[int]programmedResponse
}

// RecordedRequest is one request the mock received.
type RecordedRequest struct {
	Headers http.Header
	Body    map[string]any
}

type programmedResponse struct {
	status int
	body   any
}

// NewApiServer creates a mock that is not yet listening.
func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]RecordedRequest{},
		responses: map[string]map[int]programmedResponse{},
	}
}

// Start begins serving on a local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the server base URL.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		body = map[string]any{}
	}

	a.mu.Lock()
	index := len(a.requests[key])
	a.requests[key] = append(a.requests[key], RecordedRequest{Headers: r.Header.Clone(), Body: body})
	resp := a.responseFor(key, index)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// responseFor expects a.mu to be held.
func (a *ApiMock) responseFor(key string, index int) programmedResponse {
	if byIndex, ok := a.responses[key]; ok {
		if resp, ok := byIndex[index]; ok {
			return resp
		}
		if resp, ok := byIndex[-1]; ok {
			return resp
		}
	}
	return programmedResponse{status: http.StatusOK, body: map[string]any{}}
}

// SetResponse programs the answer to the index-th request on a route, or
// the default answer when index is -1.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if a.responses[key] == nil {
		a.responses[key] = map[int]programmedResponse{}
	}
	a.responses[key][index] = programmedResponse{status: status, body: response}
}

// Requests returns the requests received on a route.
func (a *ApiMock) Requests(method, path string) []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]RecordedRequest(nil), a.requests[method+path]...)
}

// GetRequestBody returns the body of the index-th request on a route, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	reqs := a.Requests(method, path)
	if index < 0 || index >= len(reqs) {
		return nil
	}
	return reqs[index].Body
}

// Clear forgets every request and programmed response.
func (a *ApiMock) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]RecordedRequest{}
	a.responses = map[string]map[int]programmedResponse{}
}
