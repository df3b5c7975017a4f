package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	opts = append([]Option{WithDefaults(pipeline.Options{ApproxMetrics: true})}, opts...)
	ts := httptest.NewServer(New(runner, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeErrorBody(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("X-Request-ID = %q is not a UUID", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("malformed request id should be replaced")
	}
}

func TestCount(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/count", "text/plain", "The cat. the DOG, the end")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	counts, err := wio.ReadCounts(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	want := cloud.Counts{{Text: "the", Count: 3}, {Text: "cat", Count: 1}, {Text: "dog", Count: 1}, {Text: "end", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %v, want %v", i, counts[i], want[i])
		}
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"counts", `{"counts":[{"text":"a","count":10},{"text":"b","count":1}],"config":{"min_font_size":12,"max_font_size":48}}`},
		{"text", `{"text":"a a a a a a a a a a b","config":{"min_font_size":12,"max_font_size":48}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/layout", "application/json", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %+v", resp.StatusCode, decodeErrorBody(t, resp))
			}
			l, err := wio.ReadLayout(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if len(l.Words) != 2 {
				t.Fatalf("placed %d words", len(l.Words))
			}
			if l.Words[0].Bucket != 20 || l.Words[0].FontSize != 48 {
				t.Errorf("a = bucket %d size %d, want 20 48", l.Words[0].Bucket, l.Words[0].FontSize)
			}
			if l.Words[1].Bucket != 1 || l.Words[1].FontSize != 12 {
				t.Errorf("b = bucket %d size %d, want 1 12", l.Words[1].Bucket, l.Words[1].FontSize)
			}
		})
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg&style=spectrum&boxes=true", "image/svg+xml", "<svg"},
		{"?format=png&scale=1", "image/png", "\x89PNG"},
		{"?format=html&flow=1&seed=7&title=Cloud", "text/html; charset=utf-8", "<!DOCTYPE html>"},
		{"?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render"+tt.query, "text/plain", "alpha beta beta gamma gamma gamma")
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %+v", resp.StatusCode, decodeErrorBody(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if got := resp.Header.Get("X-Wordgraph-Placed"); got != "3" {
				t.Errorf("X-Wordgraph-Placed = %q", got)
			}
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(resp.Body); err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte(tt.prefix)) {
				t.Errorf("body starts with %q", buf.String()[:min(20, buf.Len())])
			}
		})
	}
}

func TestRenderLayoutBody(t *testing.T) {
	ts := newTestServer(t)
	l := wio.Layout{
		Width: 200, Height: 100, AspectRatio: 2,
		Words: []wio.Word{{Text: "solo", Count: 1, Bucket: 1, FontSize: 18, X: 60, Y: 40, Width: 43.2, Height: 21.6}},
	}
	data, err := wio.MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}

	resp := post(t, ts.URL+"/v1/render?format=svg", "application/json", string(data))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), ">solo</text>") {
		t.Errorf("svg lacks word: %s", buf.String())
	}
}

func TestRenderOversizedPNG(t *testing.T) {
	ts := newTestServer(t)
	body := `{"width":100000,"height":60000,"aspect_ratio":1.6667,"words":[]}`

	resp := post(t, ts.URL+"/v1/render?format=png&scale=1", "application/json", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := decodeErrorBody(t, resp).Error.Code; got != errors.ErrCodeInvalidInput {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeInvalidInput)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, WithMaxBodyBytes(64))

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"empty count", "/v1/count", "text/plain", "", http.StatusBadRequest, errors.ErrCodeEmptyInput},
		{"empty layout", "/v1/layout", "application/json", `{"counts":[]}`, http.StatusBadRequest, errors.ErrCodeEmptyInput},
		{"bad json", "/v1/layout", "application/json", `{"counts":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", "/v1/layout", "application/json", `{"words":[]}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"both sources", "/v1/layout", "application/json", `{"text":"a","counts":[{"text":"a","count":1}]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad config", "/v1/layout", "application/json", `{"text":"a","config":{"max_bucket":-1}}`, http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"bad count", "/v1/layout", "application/json", `{"counts":[{"text":"a","count":0}]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", "/v1/render?format=gif", "text/plain", "a", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad style", "/v1/render?style=neon", "text/plain", "a", http.StatusBadRequest, errors.ErrCodeInvalidStyle},
		{"bad scale", "/v1/render?format=png&scale=-2", "text/plain", "a", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"huge scale", "/v1/render?format=png&scale=1000", "text/plain", "a", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too large", "/v1/count", "text/plain", strings.Repeat("word ", 100), http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeErrorBody(t, resp)
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
			if body.RequestID == "" {
				t.Error("error body lacks request_id")
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeEmptyInput, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/count")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
