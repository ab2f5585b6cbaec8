package media

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/llm"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatter struct {
	available bool
	reply     string
	err       error
	lastUser  string
}

func (f *fakeChatter) Available() bool { return f.available }

func (f *fakeChatter) Chat(ctx context.Context, req llm.Request) (string, error) {
	f.lastUser = req.User
	return f.reply, f.err
}

// fakeQueue emulates the fal.ai queue, storage and CDN endpoints.
type fakeQueue struct {
	srv *httptest.Server

	mu          sync.Mutex
	polls       int
	readyAfter  int
	submitted   map[string]any
	uploaded    []byte
	uploadType  string
	initiateReq map[string]string
}

func newFakeQueue(t *testing.T, readyAfter int) *fakeQueue {
	t.Helper()
	q := &fakeQueue{readyAfter: readyAfter}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /fal-ai/{model...}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))
		var args map[string]any
		_ = json.NewDecoder(r.Body).Decode(&args)
		q.mu.Lock()
		q.submitted = args
		q.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{
			"request_id":   "req-1",
			"status_url":   q.srv.URL + "/requests/req-1/status",
			"response_url": q.srv.URL + "/requests/req-1",
		})
	})
	mux.HandleFunc("GET /requests/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		q.mu.Lock()
		q.polls++
		done := q.readyAfter >= 0 && q.polls > q.readyAfter
		q.mu.Unlock()
		status := StatusInProgress
		if done {
			status = StatusCompleted
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": status})
	})
	mux.HandleFunc("GET /requests/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"video": map[string]string{"url": q.srv.URL + "/files/out.mp4"},
		})
	})
	mux.HandleFunc("GET /files/out.mp4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp4-bytes"))
	})
	mux.HandleFunc("POST /storage/initiate", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		q.mu.Lock()
		q.initiateReq = body
		q.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{
			"upload_url": q.srv.URL + "/upload/portrait",
			"file_url":   "https://cdn.example.com/portrait.png",
		})
	})
	mux.HandleFunc("PUT /upload/portrait", func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		q.mu.Lock()
		q.uploaded = buf[:n]
		q.uploadType = r.Header.Get("Content-Type")
		q.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	q.srv = httptest.NewServer(mux)
	t.Cleanup(q.srv.Close)
	return q
}

func (q *fakeQueue) snapshot() (polls int, submitted map[string]any, uploaded []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.polls, q.submitted, q.uploaded
}

func (q *fakeQueue) config() config.Media {
	return config.Media{
		FalKey:         "test-key",
		QueueURL:       q.srv.URL,
		StorageURL:     q.srv.URL + "/storage/initiate",
		VideoEndpoint:  "fal-ai/kling-video/text-to-video",
		AvatarEndpoint: "fal-ai/ai-avatar/single-text",
		AvatarImageURL: "https://example.com/default.png",
		AvatarFrames:   200,
		MaxWait:        "2s",
		PollInterval:   "10ms",
	}
}

func TestVideoGenerator_Generate(t *testing.T) {
	q := newFakeQueue(t, 2)
	cfg := q.config()
	chat := &fakeChatter{available: true, reply: "\"A glowing 数据 network\n  of nodes\""}
	gen := NewVideoGenerator(NewFalClient(cfg), chat, cfg)
	dir := t.TempDir()

	path, err := gen.Generate(context.Background(), "企业AI客服", "正文内容", dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "video.mp4"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mp4-bytes", string(data))

	polls, submitted, _ := q.snapshot()
	assert.Equal(t, "A glowing network of nodes", submitted["prompt"])
	assert.Equal(t, DefaultAspectRatio, submitted["aspect_ratio"])
	assert.Equal(t, 3, polls)
	assert.Contains(t, chat.lastUser, "企业AI客服")
}

func TestVideoGenerator_TimesOut(t *testing.T) {
	q := newFakeQueue(t, -1)
	cfg := q.config()
	cfg.MaxWait = "80ms"
	gen := NewVideoGenerator(NewFalClient(cfg), &fakeChatter{available: true, reply: "abstract nodes"}, cfg)

	_, err := gen.Generate(context.Background(), "t", "b", t.TempDir(), "16:9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotReady), "expected ErrNotReady, got %v", err)

	var mediaErr *apperr.MediaError
	require.True(t, errors.As(err, &mediaErr))
	assert.Equal(t, apperr.MediaVideo, mediaErr.Kind)
}

func TestVideoGenerator_RequiresLLM(t *testing.T) {
	q := newFakeQueue(t, 0)
	cfg := q.config()
	gen := NewVideoGenerator(NewFalClient(cfg), &fakeChatter{available: false}, cfg)

	assert.False(t, gen.Available())
	_, err := gen.Generate(context.Background(), "t", "b", t.TempDir(), "")
	require.Error(t, err)
	_, submitted, _ := q.snapshot()
	assert.Nil(t, submitted)
}

func TestVideoGenerator_CancelledContext(t *testing.T) {
	q := newFakeQueue(t, -1)
	cfg := q.config()
	cfg.PollInterval = "1s"
	gen := NewVideoGenerator(NewFalClient(cfg), &fakeChatter{available: true, reply: "nodes"}, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := gen.Generate(ctx, "t", "b", t.TempDir(), "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrNotReady))
}

func TestAvatarGenerator_UploadsLocalPortrait(t *testing.T) {
	q := newFakeQueue(t, 0)
	cfg := q.config()
	gen := NewAvatarGenerator(NewFalClient(cfg), cfg)
	dir := t.TempDir()

	portrait := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(portrait, []byte("png"), 0644))

	script := strings.Repeat("答", 400)
	path, err := gen.Generate(context.Background(), script, portrait, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "avatar", "avatar.mp4"), path)

	_, submitted, uploaded := q.snapshot()
	assert.Equal(t, "png", string(uploaded))
	assert.Equal(t, "image/png", q.uploadType)
	assert.Equal(t, "me.png", q.initiateReq["file_name"])

	assert.Equal(t, "https://cdn.example.com/portrait.png", submitted["image_url"])
	assert.Equal(t, float64(maxAvatarFrames), submitted["num_frames"])
	assert.Equal(t, DefaultVoice, submitted["voice"])
	assert.Equal(t, DefaultResolution, submitted["resolution"])
	assert.Equal(t, 300, len([]rune(submitted["text_input"].(string))))
}

func TestAvatarGenerator_UsesConfiguredURL(t *testing.T) {
	q := newFakeQueue(t, 0)
	cfg := q.config()
	gen := NewAvatarGenerator(NewFalClient(cfg), cfg)

	_, err := gen.Generate(context.Background(), "一段话回答", "", t.TempDir())
	require.NoError(t, err)
	_, submitted, uploaded := q.snapshot()
	assert.Equal(t, "https://example.com/default.png", submitted["image_url"])
	assert.Nil(t, uploaded)
}

func TestAvatarGenerator_EmptyScript(t *testing.T) {
	q := newFakeQueue(t, 0)
	cfg := q.config()
	gen := NewAvatarGenerator(NewFalClient(cfg), cfg)

	_, err := gen.Generate(context.Background(), "   ", "", t.TempDir())
	var mediaErr *apperr.MediaError
	require.True(t, errors.As(err, &mediaErr))
	assert.Equal(t, apperr.MediaAvatar, mediaErr.Kind)
}

func TestClampFrames(t *testing.T) {
	tests := map[int]int{0: 81, 81: 81, 100: 100, 129: 129, 500: 129}
	for in, want := range tests {
		if got := ClampFrames(in); got != want {
			t.Errorf("ClampFrames(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestSanitizePrompt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain prompt", "plain prompt"},
		{"  `quoted`  ", "quoted"},
		{"中文 mixed text。", "mixed text"},
		{"line\none\ttwo", "line one two"},
	}
	for _, tt := range tests {
		if got := SanitizePrompt(tt.in); got != tt.want {
			t.Errorf("SanitizePrompt(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
