package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, baseURL string) *Session {
	t.Helper()
	s, err := NewSession(Config{
		BaseURL:         baseURL,
		TokenSource:     StaticToken("test-token"),
		RetryMaxElapsed: 5 * time.Second,
	})
	require.NoError(t, err)
	return s
}

func TestNewSession_RequiresTokenSource(t *testing.T) {
	_, err := NewSession(Config{})
	assert.Error(t, err)
}

func TestSession_GetSetsHeadersAndParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/datasets", r.URL.Path)
		assert.Equal(t, "name eq 'x'", r.URL.Query().Get("$filter"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": []}`))
	}))
	defer srv.Close()

	s := newTestSession(t, srv.URL)

	params := url.Values{}
	params.Set("$filter", "name eq 'x'")
	body, err := s.Get(context.Background(), "/datasets", params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": []}`, string(body))
}

func TestSession_PostMarshalsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "key-1", payload["name"])

		w.Write([]byte(`{"id": "k"}`))
	}))
	defer srv.Close()

	s := newTestSession(t, srv.URL)

	body, err := s.Post(context.Background(), "/admin/tenantKeys", map[string]any{"name": "key-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "k"}`, string(body))
}

func TestSession_APIErrorParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": "ItemNotFound", "message": "Dataset is not found"}}`))
	}))
	defer srv.Close()

	s := newTestSession(t, srv.URL)

	_, err := s.Get(context.Background(), "/datasets/nope", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ItemNotFound", apiErr.Code)
	assert.Equal(t, "Dataset is not found", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestSession_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	s := newTestSession(t, srv.URL)

	body, err := s.Get(context.Background(), "/datasets", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSession_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": "InvalidRequest", "message": "bad filter"}}`))
	}))
	defer srv.Close()

	s := newTestSession(t, srv.URL)

	_, err := s.Get(context.Background(), "/datasets", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSession_PostFileSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		assert.Equal(t, "report", r.URL.Query().Get("datasetDisplayName"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "report.pbix", hdr.Filename)

		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "pbix-bytes", string(content))

		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"id": "imp-1", "importState": "Publishing"}`))
	}))
	defer srv.Close()

	s := newTestSession(t, srv.URL)

	params := url.Values{}
	params.Set("datasetDisplayName", "report")
	body, err := s.PostFile(context.Background(), "/imports", params, "report.pbix", strings.NewReader("pbix-bytes"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "imp-1", "importState": "Publishing"}`, string(body))
}
