package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RecordedRequest is one call received by the ApiMock.
type RecordedRequest struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	Body    map[string]any
}

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is a recording HTTP server standing in for third-party APIs such
// as Resend. Responses are configured per route and call index; a path
// segment of "*" matches any segment.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]RecordedRequest
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
	mockUrl   string
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]RecordedRequest{},
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

func routeKey(method, path string) string {
	return method + " " + path
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	a.mockUrl = a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	request := RecordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: map[string]string{},
		Query:   map[string]string{},
		Body:    map[string]any{},
	}
	_ = json.Unmarshal(body, &request.Body)
	for key, value := range r.Header {
		request.Headers[key] = value[0]
	}
	for key, value := range r.URL.Query() {
		request.Query[key] = value[0]
	}

	key := routeKey(r.Method, r.URL.Path)
	index := len(a.requests[key])
	a.requests[key] = append(a.requests[key], request)

	resp := a.responseFor(r.Method, r.URL.Path, index)
	payload, _ := json.Marshal(resp.body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(payload)
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.mockUrl
}

// SetResponse configures the reply to the index-th call of a route. An index
// of -1 sets the reply used for every call without its own.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := routeKey(method, path)
	if index == -1 {
		a.defaults[key] = cannedResponse{status: status, body: response}
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = cannedResponse{status: status, body: response}
}

// ClearResponses forgets the configured replies and the recorded calls of a route.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := routeKey(method, path)
	delete(a.requests, key)
	delete(a.responses, key)
	delete(a.defaults, key)
}

// RequestCount returns how many requests reached method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests[routeKey(method, path)])
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	if r, ok := a.request(method, path, index); ok {
		return r.Body
	}
	return nil
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	if r, ok := a.request(method, path, index); ok {
		return r.Headers
	}
	return nil
}

func (a *ApiMock) request(method, path string, index int) (RecordedRequest, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	recorded := a.requests[routeKey(method, path)]
	if index < 0 || index >= len(recorded) {
		return RecordedRequest{}, false
	}
	return recorded[index], true
}

func (a *ApiMock) responseFor(method, path string, index int) cannedResponse {
	for key, byIndex := range a.responses {
		if matchRoute(key, method, path) {
			if resp, ok := byIndex[index]; ok && resp.status != 0 {
				return resp
			}
		}
	}
	for key, resp := range a.defaults {
		if matchRoute(key, method, path) && resp.status != 0 {
			return resp
		}
	}
	return cannedResponse{status: http.StatusOK, body: map[string]any{}}
}

func matchRoute(key, method, path string) bool {
	keyMethod, pattern, ok := strings.Cut(key, " ")
	if !ok || keyMethod != method {
		return false
	}
	if pattern == path {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}
