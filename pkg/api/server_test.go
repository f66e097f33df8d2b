package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/config"
	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/observability"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pipeline"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

const bubbleChart = `{"chart": {"template": "bubble", "width": 300, "height": 300,
  "rows": [{"label": "Alpha", "value": 40}, {"label": "Beta", "value": 10}]}}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Text.Backend = text.BackendApprox
	runner, err := pipeline.NewRunner(cfg, nil)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	srv := httptest.NewServer(NewServer(runner).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/layout", bubbleChart)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res layout.Result
	decodeBody(t, resp, &res)
	if res.Kind != layout.KindBubble || len(res.Nodes) != 2 {
		t.Errorf("result kind=%q nodes=%d", res.Kind, len(res.Nodes))
	}
	if res.Nodes[0].Radius <= res.Nodes[1].Radius {
		t.Errorf("larger value should get the larger circle: %v <= %v", res.Nodes[0].Radius, res.Nodes[1].Radius)
	}
}

func TestRenderEndpoint(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name        string
		query       string
		contentType string
		prefix      string
	}{
		{"default svg", "", "image/svg+xml", "<svg"},
		{"png", "?format=png", "image/png", "\x89PNG"},
		{"json", "?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/render"+tt.query, bubbleChart)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if resp.Header.Get("X-Render-ID") == "" {
				t.Error("missing X-Render-ID")
			}
			buf := make([]byte, len(tt.prefix))
			if _, err := resp.Body.Read(buf); err != nil || string(buf) != tt.prefix {
				t.Errorf("body starts with %q, want %q", buf, tt.prefix)
			}
		})
	}
}

func TestMeasureEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/measure", `{"text": "abc", "font": {"family": "Arial", "size": 10}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var m MeasureResponse
	decodeBody(t, resp, &m)
	if m.Width != 18 || m.Height != 12 {
		t.Errorf("metrics = %+v, want width 18 height 12", m)
	}
}

func TestFitEndpoint(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"truncate", `{"text": "Category Alpha", "font": {"family": "Arial", "size": 12}, "max_width": 40}`, "Cate…"},
		{"shrink fits", `{"text": "Cat", "font": {"family": "Arial", "size": 12}, "max_width": 40, "mode": "shrink"}`, "Cat"},
		{"wrap", `{"text": "one two", "font": {"family": "Arial", "size": 10}, "max_width": 30, "mode": "wrap"}`, "one\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/fit", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			var fit text.Fit
			decodeBody(t, resp, &fit)
			if fit.Text != tt.want {
				t.Errorf("Text = %q, want %q", fit.Text, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   apperrors.Code
	}{
		{"malformed", "/v1/layout", `{"chart":`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"unknown field", "/v1/layout", `{"chrt": {}}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"unknown template", "/v1/render", `{"chart": {"template": "pie"}}`, http.StatusBadRequest, apperrors.ErrCodeInvalidKind},
		{"bad format", "/v1/render?format=gif", bubbleChart, http.StatusBadRequest, apperrors.ErrCodeInvalidFormat},
		{"bad fit mode", "/v1/fit", `{"text": "a", "max_width": 10, "mode": "squeeze"}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"negative width", "/v1/fit", `{"text": "a", "max_width": -1}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"negative font size", "/v1/fit", `{"text": "a", "max_width": 10, "font": {"size": -3}}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"negative measure size", "/v1/measure", `{"text": "a", "font": {"family": "Arial", "size": -0.5}}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			decodeBody(t, resp, &body)
			if body.Error.Code != tt.code {
				t.Errorf("code = %q (%s), want %q", body.Error.Code, body.Error.Message, tt.code)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/layout")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	post(t, srv, "/v1/measure", `{"text": "a"}`)
	post(t, srv, "/v1/fit", `{"text": "a", "max_width": -1}`)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
}
