package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func dialChat(t *testing.T, pipeline *Pipeline) *websocket.Conn {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, pipeline)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn
}

func TestWebSocketGenerate(t *testing.T) {
	provider := &fakeProvider{reply: "Use the gel first."}
	conn := dialChat(t, newTestPipeline(t, testSelection(t, "gel"), provider, nil))

	if err := conn.WriteJSON(wsRequest{Type: "generate"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "reply" {
		t.Fatalf("type = %q, want reply (%+v)", resp.Type, resp)
	}
	if resp.SessionID == "" {
		t.Error("expected a session id")
	}
	if resp.Reply != "Use the gel first." {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestWebSocketFollowUpFlow(t *testing.T) {
	provider := &fakeProvider{reply: "routine"}
	conn := dialChat(t, newTestPipeline(t, testSelection(t, "gel"), provider, nil))

	if err := conn.WriteJSON(wsRequest{Type: "generate"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var generated wsResponse
	if err := conn.ReadJSON(&generated); err != nil {
		t.Fatalf("read: %v", err)
	}

	msg := wsRequest{Type: "followup", SessionID: generated.SessionID, Content: "How often?"}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	var answer wsResponse
	if err := conn.ReadJSON(&answer); err != nil {
		t.Fatalf("read: %v", err)
	}
	if answer.Type != "reply" {
		t.Errorf("type = %q, want reply (%+v)", answer.Type, answer)
	}
	if answer.SessionID != generated.SessionID {
		t.Errorf("session changed from %s to %s", generated.SessionID, answer.SessionID)
	}
}

func TestWebSocketEmptySelection(t *testing.T) {
	conn := dialChat(t, newTestPipeline(t, testSelection(t), &fakeProvider{reply: "x"}, nil))

	if err := conn.WriteJSON(wsRequest{Type: "generate"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" {
		t.Errorf("type = %q, want error", resp.Type)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	conn := dialChat(t, newTestPipeline(t, testSelection(t, "gel"), &fakeProvider{reply: "x"}, nil))

	if err := conn.WriteJSON(wsRequest{Type: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Error, "unknown message type") {
		t.Errorf("got %+v, want an unknown-type error", resp)
	}
}
