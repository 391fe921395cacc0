package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"MetalWatch/internal/screen"
)

type stubList struct {
	view      screen.ListView
	refreshes int
}

func (s *stubList) View() screen.ListView { return s.view }

func (s *stubList) Refresh(context.Context) screen.ListView {
	s.refreshes++
	return s.view
}

type stubDetail struct {
	ids  []string
	view screen.DetailScreenView
}

func (s *stubDetail) OpenDetail(_ context.Context, id string) screen.DetailScreenView {
	s.ids = append(s.ids, id)
	v := s.view
	v.ID = id
	return v
}

func readyView() screen.ListView {
	return screen.ListView{
		State: screen.StateReady,
		Cards: []screen.Card{
			{Symbol: "gold", Name: "Gold", PriceText: "₹7012.45 / g", Elapsed: "Updated 5 sec ago"},
			{Symbol: "silver", Name: "Silver", PriceText: "₹84.10 / g", Elapsed: "Updated 5 sec ago"},
		},
	}
}

func foundView() screen.DetailScreenView {
	return screen.DetailScreenView{
		State: screen.StateFound,
		Title: "Gold Details",
		Lines: []screen.DetailLine{
			{Label: "24K Price", Value: "₹100.00 / gram"},
			{Label: "Previous Close", Value: "₹94.66 / gram"},
		},
	}
}

func TestFormatListView(t *testing.T) {
	msg := FormatListView(readyView())
	for _, want := range []string{"Live Metal Prices", "<b>Gold</b>: ₹7012.45 / g", "Updated 5 sec ago · /gold", "<b>Silver</b>"} {
		if !strings.Contains(msg, want) {
			t.Errorf("list message missing %q:\n%s", want, msg)
		}
	}

	msg = FormatListView(screen.ListView{State: screen.StateError, Error: "Could not connect to Metals.dev."})
	if !strings.Contains(msg, "Could not connect to Metals.dev.") {
		t.Errorf("error message not rendered: %s", msg)
	}
	if strings.Contains(msg, "Gold") {
		t.Errorf("error view must not render cards: %s", msg)
	}

	if msg := FormatListView(screen.ListView{State: screen.StateLoading}); !strings.Contains(msg, "Loading") {
		t.Errorf("loading view: %s", msg)
	}
}

func TestFormatDetailView(t *testing.T) {
	msg := FormatDetailView(foundView())
	if !strings.HasPrefix(msg, "<b>Gold Details</b>") {
		t.Errorf("unexpected title: %s", msg)
	}
	if !strings.Contains(msg, "Previous Close: <b>₹94.66 / gram</b>") {
		t.Errorf("missing previous close: %s", msg)
	}

	msg = FormatDetailView(screen.DetailScreenView{State: screen.StateNotFound, Error: "Metal not found"})
	if msg != "❌ Metal not found" {
		t.Errorf("not found: %q", msg)
	}
}

func TestBot_HandleCommand(t *testing.T) {
	list := &stubList{view: readyView()}
	detail := &stubDetail{view: foundView()}
	bot := NewBot(list, detail)
	ctx := context.Background()

	if reply := bot.HandleCommand(ctx, "/prices"); !strings.Contains(reply, "Live Metal Prices") {
		t.Errorf("/prices: %s", reply)
	}
	if list.refreshes != 0 {
		t.Errorf("/prices must not refresh")
	}

	bot.HandleCommand(ctx, "/refresh@metal_bot")
	if list.refreshes != 1 {
		t.Errorf("expected 1 refresh, got %d", list.refreshes)
	}

	if reply := bot.HandleCommand(ctx, "/metal GOLD"); !strings.Contains(reply, "Gold Details") {
		t.Errorf("/metal GOLD: %s", reply)
	}
	if reply := bot.HandleCommand(ctx, "/Platinum"); !strings.Contains(reply, "Gold Details") {
		t.Errorf("/Platinum: %s", reply)
	}
	if len(detail.ids) != 2 || detail.ids[0] != "GOLD" || detail.ids[1] != "platinum" {
		t.Errorf("unexpected detail ids: %v", detail.ids)
	}

	for _, cmd := range []string{"", "hello", "/metal", "/copper"} {
		reply := bot.HandleCommand(ctx, cmd)
		if cmd == "/metal" {
			if !strings.HasPrefix(reply, "Usage") {
				t.Errorf("%q: %s", cmd, reply)
			}
			continue
		}
		if !strings.HasPrefix(reply, "Available commands") {
			t.Errorf("%q: expected help, got %s", cmd, reply)
		}
	}
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottoken/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tn := NewTelegramNotifier("token", "42", "", nil)
	tn.APIBase = server.URL

	if err := tn.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["chat_id"] != "42" || got["text"] != "hi" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestTelegramNotifier_SendWithRetry_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tn := NewTelegramNotifier("token", "42", "", nil)
	tn.APIBase = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := tn.SendWithRetry(ctx, "hi", 3); err == nil {
		t.Fatal("expected error")
	}
}

func TestTelegramNotifier_SendWithRetry_NoRetries(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tn := NewTelegramNotifier("token", "42", "", nil)
	tn.APIBase = server.URL

	err := tn.SendWithRetry(context.Background(), "hi", 0)
	if err == nil || !strings.Contains(err.Error(), "all 1 retries exhausted") {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestTelegramNotifier_StartPolling_OnlyConfiguredChat(t *testing.T) {
	var (
		mu      sync.Mutex
		handled []string
		sent    []map[string]string
	)
	delivered := make(chan struct{}, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bottoken/getUpdates":
			if r.URL.Query().Get("offset") == "0" {
				_, _ = w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":"/refresh","chat":{"id":999}}},
					{"update_id":8,"message":{"text":" /prices ","chat":{"id":42}}}
				]}`))
				return
			}
			select {
			case <-r.Context().Done():
			case <-time.After(50 * time.Millisecond):
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/bottoken/sendMessage":
			var payload map[string]string
			_ = json.NewDecoder(r.Body).Decode(&payload)
			mu.Lock()
			sent = append(sent, payload)
			mu.Unlock()
			select {
			case delivered <- struct{}{}:
			default:
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	tn := NewTelegramNotifier("token", "42", "", nil)
	tn.APIBase = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tn.StartPolling(ctx, func(_ context.Context, cmd string) string {
			mu.Lock()
			handled = append(handled, cmd)
			mu.Unlock()
			return "reply to " + cmd
		})
	}()

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("no reply delivered")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "/prices" {
		t.Fatalf("expected only /prices from chat 42, got %v", handled)
	}
	if len(sent) != 1 || sent[0]["chat_id"] != "42" || sent[0]["text"] != "reply to /prices" {
		t.Errorf("unexpected replies: %v", sent)
	}
}
