package server

import (
	"context"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matthewbaird/appforge/internal/generator"
	"github.com/matthewbaird/appforge/internal/progress"
	"github.com/matthewbaird/appforge/internal/spec"
)

// clientMessage is what the WebSocket client sends.
type clientMessage struct {
	Type string       `json:"type"`
	Spec spec.AppSpec `json:"spec,omitempty"`
}

// serverMessage is a streamed response frame.
type serverMessage struct {
	Type     string          `json:"type"`
	Progress *progress.Event `json:"progress,omitempty"`
	Files    int             `json:"files,omitempty"`
	Code     string          `json:"code,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// generateStream upgrades to WebSocket and runs generation, streaming one
// progress frame per stage and a terminal done or error frame.
func (s *Server) generateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("server: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				return
			}
			log.Printf("server: websocket read: %v", err)
			return
		}

		switch msg.Type {
		case "generate":
			sp := msg.Spec.Normalized()
			if err := sp.Validate(); err != nil {
				s.sendWS(ctx, conn, serverMessage{Type: "error", Code: "INVALID_SPEC", Message: err.Error()})
				continue
			}
			sink := progress.SinkFunc(func(e progress.Event) {
				ev := e
				s.sendWS(ctx, conn, serverMessage{Type: "progress", Progress: &ev})
			})
			app, err := generator.GenerateApp(ctx, sp, sink)
			if err != nil {
				s.sendWS(ctx, conn, serverMessage{Type: "error", Code: "GENERATION_FAILED", Message: err.Error()})
				continue
			}
			s.sendWS(ctx, conn, serverMessage{Type: "done", Files: app.FileCount()})
		case "ping":
			s.sendWS(ctx, conn, serverMessage{Type: "pong"})
		default:
			s.sendWS(ctx, conn, serverMessage{Type: "error", Code: "UNKNOWN_TYPE", Message: "unknown message type: " + msg.Type})
		}
	}
}

func (s *Server) sendWS(ctx context.Context, conn *websocket.Conn, msg serverMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
