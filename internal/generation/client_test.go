package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{Endpoint: srv.URL + "/api/generate"})
	require.NoError(t, err)
	return client, &calls
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestGenerate_Success(t *testing.T) {
	var got map[string]any
	var gotHeader http.Header
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"success": true, "caption": "A", "content": "B", "image_url": "http://x/y.png", "message": "Content generated successfully!"}`)
	})

	ctx := WithAttemptID(context.Background(), "attempt-1")
	res, err := client.Generate(ctx, Request{Topic: "cloud", Platforms: []string{"linkedin"}})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "attempt-1", gotHeader.Get("X-Request-ID"))

	assert.Equal(t, "cloud", got["topic"])
	assert.Equal(t, []any{"linkedin"}, got["platforms"])
	v, ok := got["schedule_time"]
	assert.True(t, ok, "schedule_time must be present")
	assert.Nil(t, v, "schedule_time must be null when not scheduled")

	assert.True(t, res.Success)
	assert.Equal(t, "A", res.Caption)
	assert.Equal(t, "B", res.Content)
	assert.Equal(t, "http://x/y.png", res.ImageURL)
	assert.True(t, res.HasImage())
}

func TestGenerate_ScheduleTimeSent(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"success": true}`)
	})

	when := "2026-10-18T12:30"
	_, err := client.Generate(context.Background(), Request{Topic: "t", Platforms: []string{"facebook"}, ScheduleTime: &when})
	require.NoError(t, err)
	assert.Equal(t, when, got["schedule_time"])
}

func TestGenerate_GeneratesRequestIDWhenMissing(t *testing.T) {
	var id string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, `{"success": true}`)
	})

	_, err := client.Generate(context.Background(), Request{Topic: "t", Platforms: []string{"facebook"}})
	require.NoError(t, err)
	assert.Len(t, id, 36)
}

func TestGenerate_NullFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success": true, "caption": null, "content": "B", "image_url": null}`)
	})

	res, err := client.Generate(context.Background(), Request{Topic: "t", Platforms: []string{"facebook"}})
	require.NoError(t, err)
	assert.Equal(t, CaptionPlaceholder, res.CaptionText())
	assert.False(t, res.HasImage())
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
		wantCause  bool
	}{
		{"success false", http.StatusOK, `{"success": false, "error": "quota exceeded"}`, 200, "quota exceeded", false},
		{"server error with message", http.StatusInternalServerError, `{"success": false, "error": "model unavailable"}`, 500, "model unavailable", false},
		{"bad request", http.StatusBadRequest, `{"success": false, "error": "Topic and platforms are required"}`, 400, "Topic and platforms are required", false},
		{"non-2xx with html body", http.StatusBadGateway, `<html>bad gateway</html>`, 502, "", false},
		{"non-2xx even if success true", http.StatusInternalServerError, `{"success": true}`, 500, "", false},
		{"unparsable body", http.StatusOK, `not json`, 200, "", true},
		{"missing success", http.StatusOK, `{"caption": "A"}`, 200, "", true},
		{"wrong success type", http.StatusOK, `{"success": "yes"}`, 200, "", true},
		{"success false without message", http.StatusOK, `{"success": false}`, 200, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Generate(context.Background(), Request{Topic: "t", Platforms: []string{"facebook"}})
			require.Error(t, err)

			var se *ServerError
			require.True(t, errors.As(err, &se), "expected *ServerError, got %T: %v", err, err)
			assert.Equal(t, tt.wantStatus, se.StatusCode)
			assert.Equal(t, tt.wantMsg, se.Message)
			if tt.wantCause {
				assert.Error(t, se.Err)
			}
			if tt.wantMsg == "" {
				assert.Equal(t, FallbackServerMessage, UserMessage(err))
			} else {
				assert.Equal(t, tt.wantMsg, UserMessage(err))
			}
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL + "/api/generate"
	srv.Close()

	client, err := NewClient(ClientOptions{Endpoint: endpoint})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Topic: "t", Platforms: []string{"facebook"}})
	var te *TransportError
	require.True(t, errors.As(err, &te), "expected *TransportError, got %T", err)
	assert.False(t, te.Timeout())
	assert.Equal(t, FallbackMessage, UserMessage(err))
}

func TestGenerate_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, Request{Topic: "t", Platforms: []string{"facebook"}})
	var te *TransportError
	require.True(t, errors.As(err, &te), "expected *TransportError, got %T", err)
	assert.True(t, te.Timeout())
}

func TestNewClient_RejectsBadEndpoint(t *testing.T) {
	_, err := NewClient(ClientOptions{Endpoint: "ftp://example.com/api"})
	assert.Error(t, err)

	_, err = NewClient(ClientOptions{Endpoint: "://nope"})
	assert.Error(t, err)
}
