// Package visual generates article images through an OpenAI-compatible
// /images/generations endpoint (Volcengine Ark by default).
package visual

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/logger"
	"aineoo/internal/observability"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultWidth  = 1344
	DefaultHeight = 768

	defaultMaxRetries = 2
	defaultRetryStep  = 2 * time.Second
)

// Client generates images and saves them to disk.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	width      int
	height     int
	httpClient *http.Client
	maxRetries int
	retryStep  time.Duration
}

// NewClient creates an image client from configuration.
func NewClient(cfg config.Images) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		width:      cfg.Width,
		height:     cfg.Height,
		httpClient: &http.Client{Timeout: config.Duration(cfg.Timeout, 90*time.Second)},
		maxRetries: defaultMaxRetries,
		retryStep:  defaultRetryStep,
	}
	if c.width <= 0 {
		c.width = DefaultWidth
	}
	if c.height <= 0 {
		c.height = DefaultHeight
	}
	return c
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != "" && c.baseURL != ""
}

// GenerationRequest is the body of POST /images/generations.
type GenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Seed           int64  `json:"seed"`
	ResponseFormat string `json:"response_format"`
	Watermark      bool   `json:"watermark"`
}

// GenerationResponse is the provider reply.
type GenerationResponse struct {
	Created int64         `json:"created"`
	Data    []ImageResult `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ImageResult holds one generated image, inline or by URL.
type ImageResult struct {
	B64JSON string `json:"b64_json"`
	URL     string `json:"url,omitempty"`
}

// Generate renders prompt with seed and writes the image to savePath.
// Transient failures are retried with a linear 2s, 4s wait.
func (c *Client) Generate(ctx context.Context, prompt, savePath string, seed int64) (string, error) {
	if !c.Available() {
		return "", &apperr.MediaError{Kind: apperr.MediaImage, Err: errors.New("image API key not configured")}
	}

	start := time.Now()
	attempt := 0
	op := func() error {
		attempt++
		resp, err := c.request(ctx, prompt, seed)
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return backoff.Permanent(errors.New("response contained no image data"))
		}
		img := resp.Data[0]
		switch {
		case img.B64JSON != "":
			return SaveBase64Image(img.B64JSON, savePath)
		case img.URL != "":
			return c.DownloadImage(ctx, img.URL, savePath)
		default:
			return backoff.Permanent(errors.New("response contained no image data"))
		}
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("Image generation failed, retrying", "attempt", attempt, "wait", wait.String(), "error", err.Error())
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&linearBackOff{step: c.retryStep}, uint64(c.maxRetries)), ctx)
	err := backoff.RetryNotify(op, policy, notify)
	observability.MediaGenerations.WithLabelValues(string(apperr.MediaImage), observability.Outcome(err)).Inc()
	if err != nil {
		return "", &apperr.MediaError{Kind: apperr.MediaImage, Err: err}
	}

	logger.Info("Image generated", "file", filepath.Base(savePath), "duration", time.Since(start).Round(100*time.Millisecond).String())
	return savePath, nil
}

func (c *Client) request(ctx context.Context, prompt string, seed int64) (*GenerationResponse, error) {
	reqBody, err := json.Marshal(GenerationRequest{
		Model:          c.model,
		Prompt:         prompt,
		Size:           fmt.Sprintf("%dx%d", c.width, c.height),
		Seed:           seed,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(reqBody))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("image API error (status %d): %s", resp.StatusCode, truncate(string(body), 300))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var out GenerationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("image API error %s: %s", out.Error.Code, out.Error.Message)
	}
	return &out, nil
}

// SaveBase64Image decodes base64Data and writes it to outputPath.
func SaveBase64Image(base64Data, outputPath string) error {
	imageData, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode base64 image: %w", err))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// DownloadImage fetches imageURL into outputPath.
func (c *Client) DownloadImage(ctx context.Context, imageURL, outputPath string) error {
	return Download(ctx, c.httpClient, imageURL, outputPath)
}

// Download streams url to outputPath, creating parent directories.
func Download(ctx context.Context, hc *http.Client, url, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download: status %d", resp.StatusCode)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}
	return nil
}

// linearBackOff waits step, 2*step, 3*step, ...
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *linearBackOff) Reset() { b.n = 0 }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
