package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/huddle-server/internal/proto"
)

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

// readEvent reads frames until one with the wanted event name arrives
// and unmarshals its data into out.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, out any) {
	t.Helper()

	for {
		var frame struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read while waiting for %q: %v", event, err)
		}
		if frame.Event != event {
			continue
		}
		if out != nil {
			if err := json.Unmarshal(frame.Data, out); err != nil {
				t.Fatalf("unmarshal %q data: %v", event, err)
			}
		}
		return
	}
}

func sendFrame(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	var raw json.RawMessage
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal %s: %v", typ, err)
		}
		raw = payload
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: raw}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func TestWebSocketAdmissionAndChat(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)

	var welcomeA proto.WelcomeData
	readEvent(t, ctx, connA, proto.EventWelcome, &welcomeA)
	if welcomeA.Username != "Friend 1" {
		t.Fatalf("expected Friend 1, got %q", welcomeA.Username)
	}
	if len(welcomeA.Users) != 1 {
		t.Fatalf("unexpected user list: %v", welcomeA.Users)
	}

	var historyA []proto.EntryData
	readEvent(t, ctx, connA, proto.EventHistory, &historyA)
	if len(historyA) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(historyA))
	}

	connB := dialWS(t, ctx, ts)

	var welcomeB proto.WelcomeData
	readEvent(t, ctx, connB, proto.EventWelcome, &welcomeB)
	if welcomeB.Username != "Friend 2" {
		t.Fatalf("expected Friend 2, got %q", welcomeB.Username)
	}

	var joined proto.UserJoinedData
	readEvent(t, ctx, connA, proto.EventUserJoined, &joined)
	if joined.Username != "Friend 2" {
		t.Fatalf("expected join notice for Friend 2, got %q", joined.Username)
	}

	sendFrame(t, ctx, connA, proto.InboundTypeMessage, proto.MessageData{Text: "hi there"})

	for _, conn := range []*websocket.Conn{connA, connB} {
		var msg proto.EntryData
		readEvent(t, ctx, conn, proto.EventMessage, &msg)
		if msg.Username != "Friend 1" || msg.Text != "hi there" {
			t.Fatalf("unexpected message payload: %+v", msg)
		}
		if msg.Timestamp == "" {
			t.Fatal("message timestamp is empty")
		}
	}
}

func TestWebSocketRoomFull(t *testing.T) {
	ts, _ := startTestServer(t) // capacity 3

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		conn := dialWS(t, ctx, ts)
		readEvent(t, ctx, conn, proto.EventWelcome, nil)
	}

	late := dialWS(t, ctx, ts)

	var full proto.RoomFullData
	readEvent(t, ctx, late, proto.EventRoomFull, &full)
	if full.Message == "" {
		t.Fatal("room_full message is empty")
	}

	// The server closes the rejected connection after the notice.
	var frame proto.Outbound
	if err := wsjson.Read(ctx, late, &frame); err == nil {
		t.Fatalf("expected connection close, got frame: %+v", frame)
	}
}

func TestWebSocketFileShare(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	readEvent(t, ctx, conn, proto.EventWelcome, nil)

	sendFrame(t, ctx, conn, proto.InboundTypeFile, proto.FileData{
		Type:     "image",
		URL:      "/uploads/123.png",
		Filename: "cat.png",
	})

	var file proto.EntryData
	readEvent(t, ctx, conn, proto.EventFile, &file)
	if file.Type != "image" || file.URL != "/uploads/123.png" || file.Filename != "cat.png" {
		t.Fatalf("unexpected file payload: %+v", file)
	}
}

func TestWebSocketTypingPresence(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	readEvent(t, ctx, connA, proto.EventWelcome, nil)
	connB := dialWS(t, ctx, ts)
	readEvent(t, ctx, connB, proto.EventWelcome, nil)

	sendFrame(t, ctx, connA, proto.InboundTypeTyping, nil)

	var who string
	readEvent(t, ctx, connB, proto.EventTyping, &who)
	if who != "Friend 1" {
		t.Fatalf("expected typing from Friend 1, got %q", who)
	}

	sendFrame(t, ctx, connA, proto.InboundTypeStopTyping, nil)
	readEvent(t, ctx, connB, proto.EventStopTyping, nil)
}

func TestWebSocketDepartureNotice(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	readEvent(t, ctx, connA, proto.EventWelcome, nil)
	connB := dialWS(t, ctx, ts)
	readEvent(t, ctx, connB, proto.EventWelcome, nil)
	readEvent(t, ctx, connA, proto.EventUserJoined, nil)

	connB.Close(websocket.StatusNormalClosure, "leaving")

	var left proto.UserLeftData
	readEvent(t, ctx, connA, proto.EventUserLeft, &left)
	if left.Username != "Friend 2" {
		t.Fatalf("expected departure of Friend 2, got %q", left.Username)
	}
	if len(left.Users) != 1 || left.Users[0] != "Friend 1" {
		t.Fatalf("unexpected member list: %v", left.Users)
	}
}

func TestWebSocketMalformedFrameIsDropped(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	readEvent(t, ctx, conn, proto.EventWelcome, nil)

	// Unknown type and bad payload are both ignored; the connection
	// stays usable afterwards.
	sendFrame(t, ctx, conn, "no_such_type", map[string]string{"x": "y"})
	if err := wsjson.Write(ctx, conn, proto.Inbound{
		Type: proto.InboundTypeMessage,
		Data: json.RawMessage(`{"text":12345}`),
	}); err != nil {
		t.Fatalf("write malformed frame: %v", err)
	}

	sendFrame(t, ctx, conn, proto.InboundTypeMessage, proto.MessageData{Text: "still here"})

	var msg proto.EntryData
	readEvent(t, ctx, conn, proto.EventMessage, &msg)
	if msg.Text != "still here" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}
