package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeOllama serves /api/tags plus the given embeddings handler.
func newFakeOllama(t *testing.T, embeddings http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/embeddings", embeddings)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestEmbed(t *testing.T) {
	var gotReq embedRequest
	server := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	})

	e := NewEmbedder(Config{BaseURL: server.URL, Model: "test-model", Dimensions: 3})

	vec, err := e.Embed(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "hello world", gotReq.Prompt)
}

func TestEmbed_ServerError(t *testing.T) {
	server := newFakeOllama(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	e := NewEmbedder(Config{BaseURL: server.URL})

	_, err := e.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestEmbed_UnavailableServerFailsFast(t *testing.T) {
	var embedCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/embeddings" {
			embedCalls++
		}
		http.Error(w, "loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	e := NewEmbedder(Config{BaseURL: server.URL})

	_, err := e.Embed(context.Background(), "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server unavailable")

	// The failed health check is cached; no embedding request is made.
	_, err = e.Embed(context.Background(), "second")
	require.Error(t, err)
	assert.Zero(t, embedCalls)
}

func TestDefaults(t *testing.T) {
	e := NewEmbedder(Config{})

	assert.Equal(t, DefaultDimensions, e.Dimensions())
	assert.Equal(t, DefaultModel, e.ModelName())
	assert.Equal(t, DefaultBaseURL, e.baseURL)
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		server := newFakeOllama(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		e := NewEmbedder(Config{BaseURL: server.URL})
		assert.NoError(t, e.Ping(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		e := NewEmbedder(Config{BaseURL: server.URL})
		err := e.Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("unreachable", func(t *testing.T) {
		e := NewEmbedder(Config{BaseURL: "http://127.0.0.1:1"})
		assert.Error(t, e.Ping(context.Background()))
	})
}
