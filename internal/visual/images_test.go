package visual

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func testClient(baseURL string) *Client {
	c := NewClient(config.Images{APIKey: "ark-key", BaseURL: baseURL + "/", Model: "seedream"})
	c.retryStep = time.Millisecond
	return c
}

func TestGenerateBase64(t *testing.T) {
	var got GenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("Expected /images/generations, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer ark-key" {
			t.Errorf("Expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(GenerationResponse{Data: []ImageResult{{B64JSON: base64.StdEncoding.EncodeToString(pngBytes)}}})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "images", "featured_00.png")
	out, err := testClient(srv.URL).Generate(context.Background(), "flat illustration", path, 1234)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != path {
		t.Errorf("Expected path %s, got %s", path, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read image: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Error("Saved image does not match response payload")
	}

	if got.Size != "1344x768" {
		t.Errorf("Expected default size 1344x768, got %s", got.Size)
	}
	if got.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", got.Seed)
	}
	if got.ResponseFormat != "b64_json" || got.Model != "seedream" {
		t.Errorf("Unexpected request: %+v", got)
	}
}

func TestGenerateDownloadsURL(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(GenerationResponse{Data: []ImageResult{{URL: srv.URL + "/files/a.png"}}})
	})
	mux.HandleFunc("/files/a.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes)
	})

	path := filepath.Join(t.TempDir(), "content_01.png")
	if _, err := testClient(srv.URL).Generate(context.Background(), "p", path, 1); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected downloaded image at %s: %v", path, err)
	}
}

func TestGenerateRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(GenerationResponse{Data: []ImageResult{{B64JSON: base64.StdEncoding.EncodeToString(pngBytes)}}})
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Generate(context.Background(), "p", filepath.Join(t.TempDir(), "x.png"), 1); err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
}

func TestGenerateFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"InvalidParameter","message":"bad prompt"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", filepath.Join(t.TempDir(), "x.png"), 1)
	var mediaErr *apperr.MediaError
	if !errors.As(err, &mediaErr) {
		t.Fatalf("Expected MediaError, got %v", err)
	}
	if mediaErr.Kind != apperr.MediaImage {
		t.Errorf("Expected image kind, got %s", mediaErr.Kind)
	}
	if calls != 1 {
		t.Errorf("Expected no retry on 400, got %d attempts", calls)
	}
}

func TestGenerateUnavailable(t *testing.T) {
	c := NewClient(config.Images{})
	if c.Available() {
		t.Error("Expected client without key to be unavailable")
	}
	if _, err := c.Generate(context.Background(), "p", "x.png", 0); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{step: 2 * time.Second}
	if d := b.NextBackOff(); d != 2*time.Second {
		t.Errorf("Expected 2s, got %s", d)
	}
	if d := b.NextBackOff(); d != 4*time.Second {
		t.Errorf("Expected 4s, got %s", d)
	}
	b.Reset()
	if d := b.NextBackOff(); d != 2*time.Second {
		t.Errorf("Expected 2s after reset, got %s", d)
	}
}
