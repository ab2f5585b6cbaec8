// Package media produces the optional article video and talking-avatar clip
// through the fal.ai queue API.
package media

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/logger"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultMaxWait      = 300 * time.Second
	DefaultPollInterval = 10 * time.Second
	defaultCallTimeout  = 30 * time.Second
	defaultDownload     = 120 * time.Second
)

// Queue status values reported by fal.ai.
const (
	StatusInQueue    = "IN_QUEUE"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// FalClient submits jobs to the fal.ai queue and waits for their result.
type FalClient struct {
	key          string
	queueURL     string
	storageURL   string
	httpClient   *http.Client
	downloader   *http.Client
	maxWait      time.Duration
	pollInterval time.Duration
}

// NewFalClient creates a queue client from configuration.
func NewFalClient(cfg config.Media) *FalClient {
	return &FalClient{
		key:          strings.TrimSpace(cfg.FalKey),
		queueURL:     strings.TrimRight(cfg.QueueURL, "/"),
		storageURL:   cfg.StorageURL,
		httpClient:   &http.Client{Timeout: defaultCallTimeout},
		downloader:   &http.Client{Timeout: config.Duration(cfg.DownloadTimeout, defaultDownload)},
		maxWait:      config.Duration(cfg.MaxWait, DefaultMaxWait),
		pollInterval: config.Duration(cfg.PollInterval, DefaultPollInterval),
	}
}

// Available reports whether a fal key is configured.
func (c *FalClient) Available() bool {
	return c != nil && c.key != "" && c.queueURL != ""
}

type queueTicket struct {
	RequestID   string `json:"request_id"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
}

type queueStatus struct {
	Status        string `json:"status"`
	QueuePosition int    `json:"queue_position"`
}

// VideoOutput is the part of a fal.ai result that carries the rendered clip.
type VideoOutput struct {
	Video struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
	} `json:"video"`
}

// Run submits arguments to endpoint, polls until the job completes and
// decodes the result into out. A job still running after maxWait yields
// apperr.ErrNotReady.
func (c *FalClient) Run(ctx context.Context, endpoint string, arguments, out any) error {
	var ticket queueTicket
	if err := c.call(ctx, http.MethodPost, c.queueURL+"/"+strings.Trim(endpoint, "/"), arguments, &ticket); err != nil {
		return fmt.Errorf("failed to submit job: %w", err)
	}
	if ticket.StatusURL == "" || ticket.ResponseURL == "" {
		return fmt.Errorf("queue returned no status url for request %q", ticket.RequestID)
	}
	logger.Info("fal.ai job submitted", "endpoint", endpoint, "request_id", ticket.RequestID)

	if err := c.wait(ctx, ticket); err != nil {
		return err
	}
	if err := c.call(ctx, http.MethodGet, ticket.ResponseURL, nil, out); err != nil {
		return fmt.Errorf("failed to fetch result: %w", err)
	}
	return nil
}

func (c *FalClient) wait(ctx context.Context, ticket queueTicket) error {
	pollCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(c.pollInterval), 1)
	start := time.Now()
	for {
		timer := time.NewTimer(limiter.Reserve().Delay())
		select {
		case <-pollCtx.Done():
			timer.Stop()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("fal.ai job timed out", "request_id", ticket.RequestID, "max_wait", c.maxWait.String())
			return fmt.Errorf("request %s after %s: %w", ticket.RequestID, c.maxWait, apperr.ErrNotReady)
		case <-timer.C:
		}

		var st queueStatus
		if err := c.call(pollCtx, http.MethodGet, ticket.StatusURL, nil, &st); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if pollCtx.Err() != nil {
				return fmt.Errorf("request %s after %s: %w", ticket.RequestID, c.maxWait, apperr.ErrNotReady)
			}
			return fmt.Errorf("failed to poll job status: %w", err)
		}

		elapsed := time.Since(start).Round(time.Second)
		switch st.Status {
		case StatusCompleted:
			logger.Info("fal.ai job completed", "request_id", ticket.RequestID, "elapsed", elapsed.String())
			return nil
		case StatusInQueue:
			logger.Debug("fal.ai job queued", "request_id", ticket.RequestID, "position", st.QueuePosition, "elapsed", elapsed.String())
		case StatusInProgress:
			logger.Debug("fal.ai job running", "request_id", ticket.RequestID, "elapsed", elapsed.String())
		default:
			logger.Warn("Unknown fal.ai job status", "request_id", ticket.RequestID, "status", st.Status)
		}
	}
}

type uploadTicket struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
}

// UploadFile pushes a local file to fal.ai storage and returns its public URL.
func (c *FalClient) UploadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	contentType := uploadContentType(path)

	var ticket uploadTicket
	payload := map[string]string{"file_name": filepath.Base(path), "content_type": contentType}
	if err := c.call(ctx, http.MethodPost, c.storageURL, payload, &ticket); err != nil {
		return "", fmt.Errorf("failed to initiate upload: %w", err)
	}
	if ticket.UploadURL == "" || ticket.FileURL == "" {
		return "", errors.New("storage returned no upload url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ticket.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.downloader.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload returned status %d", resp.StatusCode)
	}

	logger.Info("File uploaded to fal.ai storage", "file", filepath.Base(path), "url", ticket.FileURL)
	return ticket.FileURL, nil
}

func uploadContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

func (c *FalClient) call(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+c.key)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	// The status endpoint answers 202 while the job is pending.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		msg := string(data)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return fmt.Errorf("fal.ai API error (status %d): %s", resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
