// Package assets manages the per-article output directory:
//
//	{output}/{slug}/article.json
//	{output}/{slug}/images/{role}_{NN}.png
//	{output}/{slug}/video.mp4
//	{output}/{slug}/avatar/avatar.mp4
//	{output}/{slug}/preview.html
//	{output}/{slug}/result.json
package assets

import (
	"aineoo/internal/article"
	"aineoo/internal/quality"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	ArticleFile = "article.json"
	ResultFile  = "result.json"
	PreviewFile = "preview.html"
	VideoFile   = "video.mp4"
	ImagesDir   = "images"
	AvatarDir   = "avatar"
)

// Dir is one article's asset directory.
type Dir struct {
	Root string
}

// Open returns the asset directory for slug under outputDir.
func Open(outputDir, slug string) Dir {
	return Dir{Root: filepath.Join(outputDir, slug)}
}

// Ensure creates the directory tree.
func (d Dir) Ensure() error {
	if err := os.MkdirAll(filepath.Join(d.Root, ImagesDir), 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	return nil
}

func (d Dir) ArticlePath() string { return filepath.Join(d.Root, ArticleFile) }
func (d Dir) ResultPath() string  { return filepath.Join(d.Root, ResultFile) }
func (d Dir) PreviewPath() string { return filepath.Join(d.Root, PreviewFile) }

// ImagePath returns images/{role}_{NN}.png where n is the image's position
// in the generation plan.
func (d Dir) ImagePath(role article.ImageRole, n int) string {
	return filepath.Join(d.Root, ImagesDir, fmt.Sprintf("%s_%02d.png", role, n))
}

// Record is the JSON written to result.json after a dry run or a publish.
type Record struct {
	RunID         string             `json:"run_id"`
	DryRun        bool               `json:"dry_run"`
	Slug          string             `json:"slug"`
	Title         string             `json:"title"`
	AssetDir      string             `json:"asset_dir"`
	PreviewFile   string             `json:"preview_file,omitempty"`
	MediaCount    int                `json:"media_count"`
	CategoryIDs   []int              `json:"category_ids"`
	TagIDs        []int              `json:"tag_ids"`
	Quality       *quality.Report    `json:"quality,omitempty"`
	RelatedCount  int                `json:"related_count"`
	ContentSource string             `json:"content_source"`
	HasVideo      bool               `json:"has_video"`
	HasAvatar     bool               `json:"has_avatar"`
	PostID        int                `json:"post_id,omitempty"`
	Link          string             `json:"link,omitempty"`
	Status        string             `json:"status,omitempty"`
	Verify        *quality.PageCheck `json:"verify,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Published reports whether the record describes a created post.
func (r Record) Published() bool {
	return !r.DryRun && r.PostID > 0
}

// WriteArticle writes article.json.
func (d Dir) WriteArticle(a *article.Article) error {
	return WriteJSON(d.ArticlePath(), a)
}

// LoadArticle reads article.json.
func (d Dir) LoadArticle() (*article.Article, error) {
	var a article.Article
	if err := ReadJSON(d.ArticlePath(), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// WriteResult writes result.json.
func (d Dir) WriteResult(r Record) error {
	return WriteJSON(d.ResultPath(), r)
}

// LoadResult reads result.json. A missing file returns os.ErrNotExist.
func (d Dir) LoadResult() (*Record, error) {
	var r Record
	if err := ReadJSON(d.ResultPath(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WritePreview writes a standalone HTML page wrapping the rendered body.
func (d Dir) WritePreview(title, body string) (string, error) {
	page := "<!doctype html>\n<html lang=\"zh-CN\"><head><meta charset=\"utf-8\"><title>" +
		escapeTitle(title) + "</title></head><body>\n" + body + "\n</body></html>\n"
	path := d.PreviewPath()
	if err := writeFile(path, []byte(page)); err != nil {
		return "", err
	}
	return path, nil
}

// ReadPreview returns the stored preview page.
func (d Dir) ReadPreview() ([]byte, error) {
	return os.ReadFile(d.PreviewPath())
}

var titleEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeTitle(s string) string {
	return titleEscaper.Replace(s)
}

// WriteJSON writes v as indented UTF-8 JSON, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append(data, '\n'))
}

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Summary is one row of the local asset listing.
type Summary struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	ImageCount int       `json:"image_count"`
	HasVideo   bool      `json:"has_video"`
	HasAvatar  bool      `json:"has_avatar"`
	Published  bool      `json:"published"`
	Link       string    `json:"link,omitempty"`
	Score      int       `json:"score"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// List scans outputDir for article directories, newest first. Directories
// without article.json are skipped; a missing outputDir yields no rows.
func List(outputDir string) ([]Summary, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var rows []Summary
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		s, ok := summarize(Open(outputDir, e.Name()))
		if ok {
			rows = append(rows, s)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
	})
	return rows, nil
}

func summarize(d Dir) (Summary, bool) {
	info, err := os.Stat(d.ArticlePath())
	if err != nil {
		return Summary{}, false
	}
	a, err := d.LoadArticle()
	if err != nil {
		return Summary{}, false
	}

	s := Summary{
		Slug:      filepath.Base(d.Root),
		Title:     a.Title,
		UpdatedAt: info.ModTime(),
	}
	s.ImageCount, _ = countImages(filepath.Join(d.Root, ImagesDir))
	s.HasVideo = fileExists(filepath.Join(d.Root, VideoFile))
	s.HasAvatar = fileExists(filepath.Join(d.Root, AvatarDir, "avatar.mp4"))

	if r, err := d.LoadResult(); err == nil {
		s.Published = r.Published()
		s.Link = r.Link
		if r.Quality != nil {
			s.Score = r.Quality.Score
		}
		if rinfo, err := os.Stat(d.ResultPath()); err == nil && rinfo.ModTime().After(s.UpdatedAt) {
			s.UpdatedAt = rinfo.ModTime()
		}
	}
	return s, true
}

func countImages(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			n++
		}
	}
	return n, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
