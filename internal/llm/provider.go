// Package llm wraps chat-completion providers behind a gateway with retry,
// rate limiting, metrics and tolerant JSON extraction.
package llm

import (
	"context"
	"errors"
)

// Request is a single system + user chat completion.
type Request struct {
	System      string
	User        string
	Temperature float32
	JSON        bool // ask the provider for a JSON object response
}

// Provider performs one chat completion attempt without retrying.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrEmptyCompletion is returned when a provider replies with no content.
var ErrEmptyCompletion = errors.New("empty completion")
