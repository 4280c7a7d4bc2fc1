package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quizgrade-service/internal/app"
	"quizgrade-service/internal/infra/memory"
)

func TestWebSocketSubmitFlow(t *testing.T) {
	service := app.NewGradingService(
		memory.NewQuizRepository(memory.NewStaticQuizLoader(sampleQuizzes()), time.Minute),
		memory.NewResultStore(),
		memory.NewFeedStore(10),
		nil,
	)
	wsHandler := NewWSHandler(service, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?quizId=quiz-1&userId=u1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial feed snapshot arrives first.
	msgType, _ := readNext(conn, t, "feed")
	if msgType != "feed" {
		t.Fatalf("expected feed, got %s", msgType)
	}

	submit := map[string]any{
		"type": "submit",
		"payload": map[string]any{
			"answers": []string{"B", "False"},
		},
	}
	if err := conn.WriteJSON(submit); err != nil {
		t.Fatalf("write submit: %v", err)
	}

	// Expect the graded result and a feed update, in either order.
	gradedSeen := false
	feedSeen := false
	for i := 0; i < 3; i++ {
		typ, payload := readNext(conn, t, "")
		switch typ {
		case "graded":
			gradedSeen = true
			if payload["score"] != float64(10) {
				t.Fatalf("expected full score, got %+v", payload)
			}
			if payload["grade_letter"] != "A" || payload["passed"] != true {
				t.Fatalf("expected passing A, got %+v", payload)
			}
		case "feed":
			if recent, ok := payload["recent"].([]any); ok && len(recent) > 0 {
				feedSeen = true
			}
		}
		if gradedSeen && feedSeen {
			break
		}
	}
	if !gradedSeen || !feedSeen {
		t.Fatalf("expected graded and feed messages, got graded=%v feed=%v", gradedSeen, feedSeen)
	}
}

func TestWebSocketUnknownQuiz(t *testing.T) {
	service := app.NewGradingService(
		memory.NewQuizRepository(memory.NewStaticQuizLoader(sampleQuizzes()), time.Minute),
		memory.NewResultStore(),
		memory.NewFeedStore(10),
		nil,
	)
	wsHandler := NewWSHandler(service, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?quizId=quiz-x&userId=u1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msgType, _ := readNext(conn, t, "error")
	if msgType != "error" {
		t.Fatalf("expected error, got %s", msgType)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
