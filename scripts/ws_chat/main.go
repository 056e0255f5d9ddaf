package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/huddle-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch outbound.Event {
		case proto.EventWelcome:
			var evt proto.WelcomeData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal welcome: %v", err)
				continue
			}
			fmt.Printf("%s (online: %s)\n", evt.Message, strings.Join(evt.Users, ", "))
		case proto.EventRoomFull:
			var evt proto.RoomFullData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal room_full: %v", err)
				continue
			}
			fmt.Println(evt.Message)
			return
		case proto.EventHistory:
			var entries []proto.EntryData
			if err := json.Unmarshal(outbound.Data, &entries); err != nil {
				log.Printf("unmarshal history: %v", err)
				continue
			}
			for _, e := range entries {
				printEntry(e)
			}
		case proto.EventMessage, proto.EventFile:
			var evt proto.EntryData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal entry: %v", err)
				continue
			}
			printEntry(evt)
		case proto.EventUserJoined:
			var evt proto.UserJoinedData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal user_joined: %v", err)
				continue
			}
			fmt.Println(evt.Message)
		case proto.EventUserLeft:
			var evt proto.UserLeftData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal user_left: %v", err)
				continue
			}
			fmt.Printf("%s (online: %s)\n", evt.Message, strings.Join(evt.Users, ", "))
		case proto.EventTyping:
			var who string
			if err := json.Unmarshal(outbound.Data, &who); err == nil {
				fmt.Printf("%s is typing...\n", who)
			}
		case proto.EventStopTyping:
			// Quiet; a terminal has nowhere good to show this.
		default:
			fmt.Printf("event=%s data=%s\n", outbound.Event, outbound.Data)
		}
	}
}

func printEntry(e proto.EntryData) {
	if e.URL != "" {
		fmt.Printf("[%s] %s shared %s (%s): %s\n", e.Timestamp, e.Username, e.Filename, e.Type, e.URL)
		return
	}
	fmt.Printf("[%s] %s: %s\n", e.Timestamp, e.Username, e.Text)
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			payload, err := json.Marshal(proto.MessageData{Text: text})
			if err != nil {
				log.Printf("marshal msg: %v", err)
				return
			}
			if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMessage, Data: payload}); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
