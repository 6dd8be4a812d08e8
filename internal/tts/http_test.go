package tts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/algo2video/internal/tts"
)

func TestHTTPEngineSynthesize(t *testing.T) {
	t.Parallel()

	var gotReq tts.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/synthesize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_, _ = w.Write([]byte("fake-mp3-bytes"))
	}))
	defer server.Close()

	engine := tts.NewHTTPEngine(server.URL, 5*time.Second)
	outPath := filepath.Join(t.TempDir(), "01_hook.mp3")

	err := engine.Synthesize(context.Background(), "How do you escape a maze?", "en-US-GuyNeural", outPath)
	require.NoError(t, err)

	assert.Equal(t, "How do you escape a maze?", gotReq.Text)
	assert.Equal(t, "en-US-GuyNeural", gotReq.Voice)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-mp3-bytes"), data)
}

func TestHTTPEngineSynthesizeServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"voice not found"}`))
	}))
	defer server.Close()

	engine := tts.NewHTTPEngine(server.URL, 5*time.Second)
	outPath := filepath.Join(t.TempDir(), "seg.mp3")

	err := engine.Synthesize(context.Background(), "text", "no-such-voice", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice not found")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no file should be written on failure")
}

func TestHTTPEngineSynthesizeEmptyAudio(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	engine := tts.NewHTTPEngine(server.URL, 5*time.Second)

	err := engine.Synthesize(context.Background(), "text", "voice", filepath.Join(t.TempDir(), "x.mp3"))
	require.ErrorIs(t, err, tts.ErrEmptyAudio)
}

func TestHTTPEngineValidation(t *testing.T) {
	t.Parallel()

	engine := tts.NewHTTPEngine("http://localhost:1", time.Second)
	ctx := context.Background()

	assert.ErrorIs(t, engine.Synthesize(ctx, "", "v", "out.mp3"), tts.ErrTextEmpty)
	assert.ErrorIs(t, engine.Synthesize(ctx, "t", "", "out.mp3"), tts.ErrVoiceEmpty)
	assert.ErrorIs(t, engine.Synthesize(ctx, "t", "v", ""), tts.ErrOutPathEmpty)
}

func TestHTTPEngineHealthCheck(t *testing.T) {
	t.Parallel()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	engine := tts.NewHTTPEngine(healthy.URL, time.Second)
	require.NoError(t, engine.HealthCheck(context.Background()))

	sick := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer sick.Close()

	engine = tts.NewHTTPEngine(sick.URL, time.Second)
	require.Error(t, engine.HealthCheck(context.Background()))
}

func TestCommandEngineValidation(t *testing.T) {
	t.Parallel()

	engine := tts.NewCommandEngine("")
	assert.Equal(t, "edge-tts", engine.Binary)

	ctx := context.Background()
	assert.ErrorIs(t, engine.Synthesize(ctx, "", "v", "out.mp3"), tts.ErrTextEmpty)
	assert.ErrorIs(t, engine.Synthesize(ctx, "t", "", "out.mp3"), tts.ErrVoiceEmpty)
	assert.ErrorIs(t, engine.Synthesize(ctx, "t", "v", ""), tts.ErrOutPathEmpty)
}
