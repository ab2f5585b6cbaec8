package llm

import (
	"aineoo/internal/apperr"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func chatServer(t *testing.T, handler func(call int32, w http.ResponseWriter)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		n := atomic.AddInt32(&calls, 1)
		handler(n, w)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "deepseek-chat",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
}

func testGateway(baseURL string) *Gateway {
	p := NewOpenAIProvider("deepseek", "test-key", baseURL, "", 5*time.Second)
	return NewGateway(p, Options{InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond})
}

func TestChatRetriesServerErrors(t *testing.T) {
	srv, calls := chatServer(t, func(call int32, w http.ResponseWriter) {
		if call < 3 {
			writeError(w, http.StatusInternalServerError)
			return
		}
		writeCompletion(w, "你好")
	})

	got, err := testGateway(srv.URL).Chat(context.Background(), Request{System: "s", User: "u"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got != "你好" {
		t.Errorf("Expected content 你好, got %q", got)
	}
	if *calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", *calls)
	}
}

func TestChatGivesUpAfterMaxRetries(t *testing.T) {
	srv, calls := chatServer(t, func(_ int32, w http.ResponseWriter) {
		writeError(w, http.StatusBadGateway)
	})

	if _, err := testGateway(srv.URL).Chat(context.Background(), Request{User: "u"}); err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if *calls != DefaultMaxRetries+1 {
		t.Errorf("Expected %d attempts, got %d", DefaultMaxRetries+1, *calls)
	}
}

func TestChatDoesNotRetryClientErrors(t *testing.T) {
	srv, calls := chatServer(t, func(_ int32, w http.ResponseWriter) {
		writeError(w, http.StatusBadRequest)
	})

	if _, err := testGateway(srv.URL).Chat(context.Background(), Request{User: "u"}); err == nil {
		t.Fatal("Expected error for 400 response")
	}
	if *calls != 1 {
		t.Errorf("Expected a single attempt for a client error, got %d", *calls)
	}
}

func TestChatTreatsEmptyContentAsFailure(t *testing.T) {
	srv, calls := chatServer(t, func(_ int32, w http.ResponseWriter) {
		writeCompletion(w, "  ")
	})

	_, err := testGateway(srv.URL).Chat(context.Background(), Request{User: "u"})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("Expected ErrEmptyCompletion, got %v", err)
	}
	if *calls != DefaultMaxRetries+1 {
		t.Errorf("Expected empty replies to be retried, got %d attempts", *calls)
	}
}

func TestChatJSON(t *testing.T) {
	srv, _ := chatServer(t, func(_ int32, w http.ResponseWriter) {
		writeCompletion(w, "好的：\n```json\n{\"title\": \"AI客服\"}\n```")
	})

	obj, err := testGateway(srv.URL).ChatJSON(context.Background(), Request{User: "u"})
	if err != nil {
		t.Fatalf("ChatJSON failed: %v", err)
	}
	if obj["title"] != "AI客服" {
		t.Errorf("Expected title AI客服, got %v", obj["title"])
	}
}

func TestChatJSONInvalidReply(t *testing.T) {
	srv, _ := chatServer(t, func(_ int32, w http.ResponseWriter) {
		writeCompletion(w, "抱歉，我无法完成")
	})

	_, err := testGateway(srv.URL).ChatJSON(context.Background(), Request{User: "u"})
	var respErr *apperr.LLMResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("Expected LLMResponseError, got %v", err)
	}
	if !errors.Is(err, ErrNoJSONObject) {
		t.Errorf("Expected ErrNoJSONObject in chain, got %v", err)
	}
}

func TestChatStopsOnCancel(t *testing.T) {
	srv, calls := chatServer(t, func(_ int32, w http.ResponseWriter) {
		writeError(w, http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testGateway(srv.URL).Chat(ctx, Request{User: "u"}); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if *calls > 1 {
		t.Errorf("Expected no retries after cancellation, got %d attempts", *calls)
	}
}

func TestNilGatewayUnavailable(t *testing.T) {
	var g *Gateway
	if g.Available() {
		t.Error("Expected nil gateway to be unavailable")
	}
	if g.Provider() != "none" {
		t.Errorf("Expected provider none, got %s", g.Provider())
	}
	if _, err := g.Chat(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}
