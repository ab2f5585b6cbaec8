// Package apperr defines the error taxonomy shared by the generation and
// publishing packages. Callers inspect errors with errors.Is and errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidInput is returned when a prompt or topic is empty after parsing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady is returned when a long-running media job exceeds its polling ceiling.
	ErrNotReady = errors.New("media job not ready")
)

// ConfigError lists every missing or invalid configuration value.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "configuration errors:\n- " + strings.Join(e.Problems, "\n- ")
}

// LLMResponseError reports a chat completion that failed or could not be parsed.
type LLMResponseError struct {
	Reason string
	Err    error
}

func (e *LLMResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm response error: %s: %v", e.Reason, e.Err)
	}
	return "llm response error: " + e.Reason
}

func (e *LLMResponseError) Unwrap() error { return e.Err }

// QualityError is returned by a strict quality gate when the score is too low.
type QualityError struct {
	Score    int
	MinScore int
	Failed   []string
}

func (e *QualityError) Error() string {
	msg := fmt.Sprintf("quality score too low: %d < %d, publish blocked", e.Score, e.MinScore)
	if len(e.Failed) > 0 {
		msg += " (failed: " + strings.Join(e.Failed, ", ") + ")"
	}
	return msg
}

// WordPressError describes a failed WordPress REST call.
type WordPressError struct {
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *WordPressError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("wordpress %s %s failed: %v", e.Method, e.Path, e.Err)
	}
	body := e.Body
	if len(body) > 300 {
		body = body[:300]
	}
	return fmt.Sprintf("wordpress %s %s returned %d: %s", e.Method, e.Path, e.Status, body)
}

func (e *WordPressError) Unwrap() error { return e.Err }

// IsAuth reports whether the request was rejected for bad credentials.
func (e *WordPressError) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsNotFound reports whether the target resource does not exist.
func (e *WordPressError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// Retryable reports whether repeating the request could succeed.
func (e *WordPressError) Retryable() bool {
	return e.Status == 0 || e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// MediaKind names a best-effort media generation step.
type MediaKind string

const (
	MediaImage  MediaKind = "image"
	MediaVideo  MediaKind = "video"
	MediaAvatar MediaKind = "avatar"
)

// MediaError wraps a failed image, video or avatar generation.
type MediaError struct {
	Kind MediaKind
	Err  error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Kind, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInterrupted):
		return 130
	default:
		return 1
	}
}

var errInterrupted = errors.New("interrupted")

// Interrupted wraps err so that ExitCode reports 130.
func Interrupted(err error) error {
	if err == nil {
		return errInterrupted
	}
	return fmt.Errorf("%w: %w", errInterrupted, err)
}
