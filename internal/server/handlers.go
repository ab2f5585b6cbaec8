package server

import (
	"aineoo/internal/article"
	"aineoo/internal/assets"
	"aineoo/internal/pipeline"
	"aineoo/internal/store"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// HealthResponse is returned by /health
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks"`
}

// ArticleListResponse is returned by GET /api/articles
type ArticleListResponse struct {
	Articles []assets.Summary `json:"articles"`
	Total    int              `json:"total"`
}

// ArticleDetailResponse is returned by GET /api/articles/{slug}
type ArticleDetailResponse struct {
	Article *article.Article `json:"article"`
	Result  *assets.Record   `json:"result,omitempty"`
	Runs    []store.Run      `json:"runs,omitempty"`
}

// RunListResponse is returned by GET /api/runs
type RunListResponse struct {
	Runs  []store.Run `json:"runs"`
	Total int         `json:"total"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := http.StatusOK

	if info, err := os.Stat(s.outputDir); err == nil && info.IsDir() {
		checks["output_dir"] = "ok"
	} else {
		checks["output_dir"] = "missing"
	}

	if s.history == nil {
		checks["store"] = "disabled"
	} else if _, err := s.history.GetStats(r.Context()); err != nil {
		checks["store"] = "error"
		status = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	resp := HealthResponse{Status: "ok", Uptime: time.Since(serverStartTime).Round(time.Second).String(), Checks: checks}
	if status != http.StatusOK {
		resp.Status = "unhealthy"
	}
	s.respondJSON(w, status, resp)
}

// handleListArticles handles GET /api/articles
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	rows, err := assets.List(s.outputDir)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list articles")
		s.respondError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}
	if rows == nil {
		rows = []assets.Summary{}
	}
	s.respondJSON(w, http.StatusOK, ArticleListResponse{Articles: rows, Total: len(rows)})
}

// handleGetArticle handles GET /api/articles/{slug}
func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	dir, ok := s.articleDir(w, r)
	if !ok {
		return
	}
	a, ok := s.loadArticle(w, dir)
	if !ok {
		return
	}

	resp := ArticleDetailResponse{Article: a}
	if rec, err := dir.LoadResult(); err == nil {
		resp.Result = rec
	}
	if s.history != nil {
		runs, err := s.history.RunsForSlug(r.Context(), a.Slug)
		if err != nil {
			s.log.Warn().Err(err).Str("slug", a.Slug).Msg("Failed to load run history")
		}
		resp.Runs = runs
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleArticleQuality handles GET /api/articles/{slug}/quality. The article
// is re-rendered from article.json and scored again, so the report reflects
// the current scoring rules rather than the stored one.
func (s *Server) handleArticleQuality(w http.ResponseWriter, r *http.Request) {
	dir, ok := s.articleDir(w, r)
	if !ok {
		return
	}
	a, ok := s.loadArticle(w, dir)
	if !ok {
		return
	}

	rec, _ := dir.LoadResult()
	report, err := pipeline.Rescore(a, rec, s.now())
	if err != nil {
		s.log.Error().Err(err).Str("slug", a.Slug).Msg("Failed to render article")
		s.respondError(w, http.StatusInternalServerError, "Failed to render article")
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handlePreview handles GET /articles/{slug}/preview
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	dir, ok := s.articleDir(w, r)
	if !ok {
		return
	}

	page, err := dir.ReadPreview()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error().Err(err).Msg("Failed to read preview")
		}
		http.Error(w, "Preview not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// handleListRuns handles GET /api/runs?limit=N&slug=S
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Run history is disabled")
		return
	}

	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRunLimit)
	}

	var (
		runs []store.Run
		err  error
	)
	if slug := r.URL.Query().Get("slug"); slug != "" {
		runs, err = s.history.RunsForSlug(r.Context(), slug)
		if len(runs) > limit {
			runs = runs[:limit]
		}
	} else {
		runs, err = s.history.ListRuns(r.Context(), limit)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list runs")
		s.respondError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	s.respondJSON(w, http.StatusOK, RunListResponse{Runs: runs, Total: len(runs)})
}

// articleDir resolves the {slug} parameter to an asset directory
func (s *Server) articleDir(w http.ResponseWriter, r *http.Request) (assets.Dir, bool) {
	slug := chi.URLParam(r, "slug")
	if !validSlug(slug) {
		s.respondError(w, http.StatusBadRequest, "Invalid slug")
		return assets.Dir{}, false
	}
	return assets.Open(s.outputDir, slug), true
}

func (s *Server) loadArticle(w http.ResponseWriter, dir assets.Dir) (*article.Article, bool) {
	a, err := dir.LoadArticle()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.respondError(w, http.StatusNotFound, "Article not found")
		} else {
			s.log.Error().Err(err).Str("dir", dir.Root).Msg("Failed to load article")
			s.respondError(w, http.StatusInternalServerError, "Failed to load article")
		}
		return nil, false
	}
	return a, true
}

func validSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, ".") {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}
