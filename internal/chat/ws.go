package chat

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type      string `json:"type"`       // "generate" or "followup"
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`    // follow-up question text
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string `json:"type"` // "reply" or "error"
	SessionID string `json:"session_id"`
	Reply     string `json:"reply,omitempty"`
	ReplyHTML string `json:"reply_html,omitempty"`
	Error     string `json:"error,omitempty"`
}

func handleWebSocket(pipeline *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chat: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			var req wsRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chat: websocket read: %v", err)
				}
				return
			}

			switch req.Type {
			case "generate":
				reply, err := pipeline.Generate(r.Context(), req.SessionID)
				respond(conn, req.SessionID, reply, err)
			case "followup":
				if req.Content == "" {
					sendWsError(conn, req.SessionID, "content is required")
					continue
				}
				reply, err := pipeline.FollowUp(r.Context(), req.SessionID, req.Content)
				respond(conn, req.SessionID, reply, err)
			default:
				sendWsError(conn, req.SessionID, "unknown message type: "+req.Type)
			}
		}
	}
}

func respond(conn *websocket.Conn, sessionID string, reply *Reply, err error) {
	if err != nil {
		sendWsError(conn, sessionID, err.Error())
		return
	}
	resp := wsResponse{
		Type:      "reply",
		SessionID: reply.SessionID,
		Reply:     reply.Reply,
		ReplyHTML: reply.ReplyHTML,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write: %v", err)
	}
}

func sendWsError(conn *websocket.Conn, sessionID, message string) {
	resp := wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Error:     message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write error: %v", err)
	}
}
