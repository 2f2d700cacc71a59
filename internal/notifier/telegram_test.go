package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testNotifier(apiBase string) *TelegramNotifier {
	t := NewTelegramNotifier("test-token", "42", "")
	t.api = apiBase
	return t
}

func TestSend_PostsHTMLMessageToChat(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	if err := testNotifier(srv.URL).Send("<b>BUY</b> BTC"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["chat_id"] != "42" {
		t.Errorf("chat_id = %q", got["chat_id"])
	}
	if got["parse_mode"] != "HTML" {
		t.Errorf("parse_mode = %q", got["parse_mode"])
	}
	if got["text"] != "<b>BUY</b> BTC" {
		t.Errorf("text = %q", got["text"])
	}
}

func TestSend_SurfacesAPIRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok":false,"description":"chat not found"}`)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).Send("hi")
	if err == nil {
		t.Fatal("expected error for rejected message")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("rejection description lost: %v", err)
	}
}

func TestSendWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `{"ok":false,"description":"gateway"}`)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	if err := testNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 1); err != nil {
		t.Fatalf("retry should recover: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestSendWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fmt.Fprint(w, `{"ok":false,"description":"down"}`)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 0)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 1 {
		t.Errorf("maxRetries 0 means a single attempt, got %d", calls)
	}
}

func TestStartPolling_RoutesOnlyConfiguredChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			fmt.Fprint(w, `{"ok":true}`)
			return
		}
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":1,"message":{"text":"/scan","chat":{"id":999}}},
				{"update_id":2,"message":{"text":"/status","chat":{"id":42}}}
			]}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":[]}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan string, 2)
	go testNotifier(srv.URL).StartPolling(ctx, func(cmd string) string {
		commands <- cmd
		return ""
	})

	select {
	case cmd := <-commands:
		if cmd != "/status" {
			t.Errorf("handled %q, want /status", cmd)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("command never reached the handler")
	}
	select {
	case cmd := <-commands:
		t.Errorf("command from a foreign chat must be dropped, got %q", cmd)
	case <-time.After(200 * time.Millisecond):
	}
}
