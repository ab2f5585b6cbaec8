package wordpress

import (
	"aineoo/internal/logger"
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Media is an item in the WordPress media library.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
	MimeType  string `json:"mime_type"`
}

// UploadMedia uploads the file at path and then sets its title, alt text,
// caption and description. A failed metadata update is logged but does not
// fail the upload.
func (c *Client) UploadMedia(ctx context.Context, path, title, altText string) (*Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	raw, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/media",
		body:        data,
		contentType: contentType,
		headers: map[string]string{
			"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filepath.Base(path)),
		},
		expected: []int{http.StatusCreated},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filepath.Base(path), err)
	}

	var media Media
	if err := decode(raw, &media); err != nil {
		return nil, err
	}
	if media.ID == 0 {
		return nil, fmt.Errorf("upload of %s returned no media id", filepath.Base(path))
	}

	meta := map[string]string{
		"title":       title,
		"alt_text":    altText,
		"caption":     title,
		"description": altText,
	}
	if err := c.postJSON(ctx, "/media/"+strconv.Itoa(media.ID), meta, nil, http.StatusOK, http.StatusCreated); err != nil {
		logger.Warn("Media metadata update failed", "media_id", media.ID, "error", err.Error())
	}

	logger.Debug("Media uploaded", "media_id", media.ID, "file", filepath.Base(path))
	return &media, nil
}
