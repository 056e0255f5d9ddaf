package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/huddle-server/internal/proto"
)

// Connects, waits for admission, sends one message, and exits once the
// broadcast comes back. Exits non-zero if the room is full.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventWelcome:
			var evt proto.WelcomeData
			if err := json.Unmarshal(raw, &evt); err != nil {
				return fmt.Errorf("unmarshal welcome: %w", err)
			}
			fmt.Printf("Admitted as %s, online: %v\n", evt.Username, evt.Users)

			payload, err := json.Marshal(proto.MessageData{Text: *text})
			if err != nil {
				return fmt.Errorf("marshal message: %w", err)
			}
			if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMessage, Data: payload}); err != nil {
				return fmt.Errorf("send: %w", err)
			}
		case proto.EventRoomFull:
			return fmt.Errorf("room is full")
		case proto.EventMessage:
			var evt proto.EntryData
			if err := json.Unmarshal(raw, &evt); err != nil {
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("Broadcast: user=%s text=%q ts=%s\n", evt.Username, evt.Text, evt.Timestamp)
			return nil
		default:
			// keep looping for the message broadcast
		}
	}
}
