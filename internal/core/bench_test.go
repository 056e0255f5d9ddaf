package core

import (
	"context"
	"strconv"
	"testing"
)

func benchmarkBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(recipients+1, 20, nil)
	go hub.Run(ctx)

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	go func() {
		for range sender.Events {
		}
	}()

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient("c" + strconv.Itoa(i))
		hub.RegisterClient(c)
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	// Flush join noise before measuring.
	for ev := range target.Events {
		if ev.Kind == EventUserJoined && ev.User == "Friend "+strconv.Itoa(recipients+1) {
			break
		}
		if ev.Kind == EventWelcome && recipients == 1 {
			break
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandSendMessage, Text: "payload"}
		for ev := range target.Events {
			if ev.Kind == EventMessage {
				break
			}
		}
	}
}

func BenchmarkBroadcast1(b *testing.B)  { benchmarkBroadcast(b, 1) }
func BenchmarkBroadcast10(b *testing.B) { benchmarkBroadcast(b, 10) }
func BenchmarkBroadcast50(b *testing.B) { benchmarkBroadcast(b, 50) }
