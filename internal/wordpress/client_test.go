package wordpress

import (
	"aineoo/internal/apperr"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUser     = "editor"
	testPassword = "abcd efgh ijkl"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != testUser || pass != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", testUser, testPassword, 5*time.Second, WithRetry(3, time.Millisecond, 4*time.Millisecond))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCanonicalURL(t *testing.T) {
	c := NewClient("https://example.com/", "", "", 0)
	assert.Equal(t, "https://example.com", c.BaseURL())
	assert.Equal(t, "https://example.com/ai-ke-fu/", c.CanonicalURL("ai-ke-fu"))
}

func TestRetriesServerErrors(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": 42, "slug": "ai-ke-fu", "link": "https://example.com/ai-ke-fu/"})
	})

	post, err := newTestClient(t, mux).CreatePost(context.Background(), PostPayload{Title: "t", Status: StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, 42, post.ID)
	assert.Equal(t, "https://example.com/ai-ke-fu/", post.Link)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusBadRequest, map[string]any{"code": "rest_invalid_param"})
	})

	_, err := newTestClient(t, mux).CreatePost(context.Background(), PostPayload{})
	require.Error(t, err)

	var wpErr *apperr.WordPressError
	require.True(t, errors.As(err, &wpErr))
	assert.Equal(t, http.StatusBadRequest, wpErr.Status)
	assert.Contains(t, wpErr.Body, "rest_invalid_param")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", "creds", time.Second)
	_, err := c.CreatePost(context.Background(), PostPayload{})

	var wpErr *apperr.WordPressError
	require.True(t, errors.As(err, &wpErr))
	assert.True(t, wpErr.IsAuth())
}

func TestUploadMedia(t *testing.T) {
	var meta map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-json/wp/v2/media", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="featured_00.png"`, r.Header.Get("Content-Disposition"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "PNGDATA", string(body))
		writeJSON(w, http.StatusCreated, map[string]any{"id": 11, "source_url": "https://example.com/wp-content/uploads/featured_00.png"})
	})
	mux.HandleFunc("POST /wp-json/wp/v2/media/11", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&meta)
		writeJSON(w, http.StatusOK, map[string]any{"id": 11})
	})

	path := filepath.Join(t.TempDir(), "featured_00.png")
	require.NoError(t, os.WriteFile(path, []byte("PNGDATA"), 0644))

	media, err := newTestClient(t, mux).UploadMedia(context.Background(), path, "AI客服 封面", "AI客服")
	require.NoError(t, err)
	assert.Equal(t, 11, media.ID)
	assert.Equal(t, "https://example.com/wp-content/uploads/featured_00.png", media.SourceURL)
	assert.Equal(t, "AI客服 封面", meta["title"])
	assert.Equal(t, "AI客服", meta["alt_text"])
	assert.Equal(t, "AI客服 封面", meta["caption"])
}

func TestUploadMediaMetadataFailureIsNotFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-json/wp/v2/media", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": 5, "source_url": "https://example.com/v.mp4"})
	})
	mux.HandleFunc("POST /wp-json/wp/v2/media/5", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, []byte("MP4"), 0644))

	media, err := newTestClient(t, mux).UploadMedia(context.Background(), path, "t", "a")
	require.NoError(t, err)
	assert.Equal(t, 5, media.ID)
}

func TestUploadMediaMissingFile(t *testing.T) {
	_, err := newTestClient(t, http.NewServeMux()).UploadMedia(context.Background(), filepath.Join(t.TempDir(), "nope.png"), "t", "a")
	assert.Error(t, err)
}

func TestEnsureTerm(t *testing.T) {
	var searches, creates int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wp-json/wp/v2/tags", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&searches, 1)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		switch r.URL.Query().Get("search") {
		case "AI客服":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 3, "name": "AI客服系统"},
				{"id": 4, "name": "ai客服"},
			})
		default:
			writeJSON(w, http.StatusOK, []map[string]any{})
		}
	})
	mux.HandleFunc("POST /wp-json/wp/v2/tags", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&creates, 1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "自动化", body["name"])
		assert.Equal(t, "zi-dong-hua", body["slug"])
		writeJSON(w, http.StatusCreated, map[string]any{"id": 9, "name": body["name"]})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	id, err := c.EnsureTerm(ctx, Tags, "AI客服")
	require.NoError(t, err)
	assert.Equal(t, 4, id, "exact case-insensitive match wins over partial match")

	id, err = c.EnsureTerm(ctx, Tags, " ai客服 ")
	require.NoError(t, err)
	assert.Equal(t, 4, id)
	assert.Equal(t, int32(1), atomic.LoadInt32(&searches), "second lookup is served from cache")

	id, err = c.EnsureTerm(ctx, Tags, "自动化")
	require.NoError(t, err)
	assert.Equal(t, 9, id)
	assert.Equal(t, int32(1), atomic.LoadInt32(&creates))

	_, err = c.EnsureTerm(ctx, Tags, "  ")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestEnsureTermExisting(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wp-json/wp/v2/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	mux.HandleFunc("POST /wp-json/wp/v2/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code": "term_exists",
			"data": map[string]any{"status": 400, "term_id": 17},
		})
	})

	id, err := newTestClient(t, mux).EnsureTerm(context.Background(), Categories, "AI")
	require.NoError(t, err)
	assert.Equal(t, 17, id)
}

func TestRelatedPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "AI客服", q.Get("search"))
		assert.Equal(t, "4", q.Get("per_page"))
		assert.Equal(t, "publish", q.Get("status"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "slug": "ai-ke-fu", "link": "https://example.com/ai-ke-fu/", "title": map[string]string{"rendered": "当前文章"}},
			{"id": 2, "slug": "a", "link": "https://example.com/a/", "title": map[string]string{"rendered": "客服 &amp; 运营"}},
			{"id": 3, "slug": "b", "link": "https://example.com/b/", "title": map[string]string{"rendered": "B"}},
			{"id": 4, "slug": "c", "link": "https://example.com/c/", "title": map[string]string{"rendered": "C"}},
		})
	})

	related, err := newTestClient(t, mux).RelatedPosts(context.Background(), "AI客服", "ai-ke-fu", 2)
	require.NoError(t, err)
	require.Len(t, related, 2)
	assert.Equal(t, "客服 & 运营", related[0].Title)
	assert.Equal(t, "https://example.com/b/", related[1].Link)

	none, err := newTestClient(t, mux).RelatedPosts(context.Background(), "AI客服", "", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetPost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wp-json/wp/v2/posts/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("_embed"))
		writeJSON(w, http.StatusOK, map[string]any{
			"id":      42,
			"slug":    "ai-ke-fu",
			"link":    "https://example.com/ai-ke-fu/",
			"date":    "2026-03-01T09:30:00",
			"title":   map[string]string{"rendered": "AI客服"},
			"content": map[string]string{"rendered": `<p>第一段</p><p>第二段<br/>换行</p><img src="https://example.com/1.png"><img src="https://example.com/2.png">`},
			"excerpt": map[string]string{"rendered": "<p>摘要</p>"},
			"_embedded": map[string]any{
				"wp:featuredmedia": []map[string]string{{"source_url": "https://example.com/1.png"}},
				"wp:term": [][]map[string]string{
					{{"name": "AI", "taxonomy": "category"}},
					{{"name": "客服", "taxonomy": "post_tag"}},
				},
			},
		})
	})
	mux.HandleFunc("GET /wp-json/wp/v2/posts/404", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"code": "rest_post_invalid_id"})
	})

	c := newTestClient(t, mux)
	post, err := c.GetPost(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "AI客服", post.Title)
	assert.Equal(t, "第一段\n第二段\n换行", post.Content)
	assert.Equal(t, "摘要", post.Excerpt)
	assert.Equal(t, []string{"AI"}, post.Categories)
	assert.Equal(t, []string{"客服"}, post.Tags)
	assert.Equal(t, []string{"https://example.com/1.png", "https://example.com/2.png"}, post.ImageURLs())

	_, err = c.GetPost(context.Background(), 404)
	assert.True(t, IsNotFound(err))
}

func TestListPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "5", q.Get("per_page"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "draft", q.Get("status"))
		assert.Equal(t, "客服", q.Get("search"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "slug": "a", "title": map[string]string{"rendered": "A"}},
		})
	})

	posts, err := newTestClient(t, mux).ListPosts(context.Background(), ListOptions{PerPage: 5, Page: 2, Status: StatusDraft, Search: "客服"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "A", posts[0].Title)
}

func TestVerifyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok/":
			_, _ = w.Write([]byte(`<html><body><img src="x.png"><h2>常见问题（FAQ）</h2><script type="application/ld+json">{}</script></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", time.Second)

	pc := c.VerifyPage(context.Background(), srv.URL+"/ok/")
	assert.True(t, pc.OK)
	assert.Equal(t, http.StatusOK, pc.StatusCode)

	pc = c.VerifyPage(context.Background(), srv.URL+"/missing/")
	assert.False(t, pc.OK)
	assert.Equal(t, http.StatusNotFound, pc.StatusCode)
}
