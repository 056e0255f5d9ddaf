package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Hub coordinates the single chat room. It owns the registry and the
// history together and is the only component that mutates either: every
// connect, command, disconnect and read query funnels through the Run
// loop, so admission checks, appends and the broadcasts that follow
// them can never interleave inconsistently.
type Hub struct {
	registry *Registry
	history  *History
	replay   int

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	queries    chan query
	done       chan struct{}

	log *zerolog.Logger
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

type queryKind int

const (
	queryStats queryKind = iota
	queryHistory
)

type query struct {
	kind  queryKind
	count int
	reply chan queryResult
}

type queryResult struct {
	count   int
	max     int
	entries []Entry
}

// NewHub constructs a hub for a room with maxUsers slots that replays
// the last replay entries to newcomers. A nil logger disables logging.
func NewHub(maxUsers, replay int, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry:   NewRegistry(maxUsers),
		history:    NewHistory(),
		replay:     replay,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		queries:    make(chan query),
		done:       make(chan struct{}),
		log:        logger,
	}
}

// Run processes registrations, commands and queries one at a time until
// the context is cancelled. It must be running before clients register.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cc := <-h.commands:
			h.handleCommand(cc.client, cc.cmd)
		case q := <-h.queries:
			h.handleQuery(q)
		case <-ctx.Done():
			return
		}
	}
}

// RegisterClient hands a fresh connection to the hub for admission and
// starts forwarding its commands. The admission outcome arrives on the
// client's Events channel: a welcome plus history, or a room-full
// notice followed by the channel closing.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
		go h.pump(c)
	case <-h.done:
		close(c.Events)
	}
}

// UnregisterClient removes a disconnected client. Safe to call for
// clients that were rejected or already removed.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// pump forwards one client's commands into the serialized loop. It
// exits when the transport closes the Commands channel.
func (h *Hub) pump(c *Client) {
	for cmd := range c.Commands {
		select {
		case h.commands <- clientCommand{client: c, cmd: cmd}:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	m, err := h.registry.Admit(c)
	if err != nil {
		h.deliver(c, &Event{
			Kind:   EventRoomFull,
			Notice: fmt.Sprintf("Chat room is full (%d/%d users)", h.registry.Size(), h.registry.Max()),
		})
		h.closeClient(c)
		h.log.Info().Str("conn_id", c.ID).Msg("connection rejected, room full")
		return
	}

	h.deliver(c, &Event{
		Kind:   EventWelcome,
		User:   m.Name,
		Users:  h.registry.Names(),
		Notice: fmt.Sprintf("Welcome %s! There are %d/%d users online.", m.Name, h.registry.Size(), h.registry.Max()),
	})
	h.broadcastExcept(c, &Event{
		Kind:   EventUserJoined,
		User:   m.Name,
		Notice: m.Name + " joined the chat",
	})
	h.deliver(c, &Event{
		Kind:    EventHistory,
		Entries: h.history.Recent(h.replay),
	})

	h.log.Info().
		Str("member", m.Name).
		Int("online", h.registry.Size()).
		Int("max", h.registry.Max()).
		Msg("member joined")
}

func (h *Hub) handleUnregister(c *Client) {
	m, removed := h.registry.Remove(c.ID)
	h.closeClient(c)
	if !removed {
		return
	}

	h.broadcastAll(&Event{
		Kind:   EventUserLeft,
		User:   m.Name,
		Notice: m.Name + " left the chat",
		Users:  h.registry.Names(),
	})

	h.log.Info().
		Str("member", m.Name).
		Int("online", h.registry.Size()).
		Int("max", h.registry.Max()).
		Msg("member left")
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandSendMessage:
		m, ok := h.registry.Find(c.ID)
		if !ok {
			return // raced a disconnect
		}
		entry := h.newEntry(m.Name)
		entry.Text = cmd.Text
		h.history.Append(*entry)
		h.broadcastAll(&Event{Kind: EventMessage, Entry: entry})

	case CommandSendFile:
		m, ok := h.registry.Find(c.ID)
		if !ok || cmd.File == nil {
			return
		}
		entry := h.newEntry(m.Name)
		entry.Media = cmd.File
		h.history.Append(*entry)
		h.broadcastAll(&Event{Kind: EventFile, Entry: entry})

	case CommandTyping:
		m, ok := h.registry.Find(c.ID)
		if !ok {
			return
		}
		h.broadcastExcept(c, &Event{Kind: EventTyping, User: m.Name})

	case CommandStopTyping:
		// No membership check: a stale stop after leaving is harmless.
		h.broadcastExcept(c, &Event{Kind: EventStopTyping})
	}
}

func (h *Hub) handleQuery(q query) {
	switch q.kind {
	case queryStats:
		q.reply <- queryResult{count: h.registry.Size(), max: h.registry.Max()}
	case queryHistory:
		q.reply <- queryResult{entries: h.history.Recent(q.count)}
	}
}

// newEntry stamps a fresh entry with the creation-time id and the
// display timestamp. IDs are milliseconds, so near-simultaneous entries
// may share one; ordering comes from the log, not the id.
func (h *Hub) newEntry(author string) *Entry {
	now := time.Now()
	return &Entry{
		ID:        now.UnixMilli(),
		Author:    author,
		Timestamp: now.Format("15:04"),
	}
}

// deliver sends an event to one client without blocking. A slow or
// broken consumer loses events rather than stalling the room.
func (h *Hub) deliver(c *Client, ev *Event) {
	if c.closed {
		return
	}
	select {
	case c.Events <- ev:
	default:
		h.log.Debug().Str("conn_id", c.ID).Int("kind", int(ev.Kind)).Msg("dropping event for slow consumer")
	}
}

func (h *Hub) broadcastAll(ev *Event) {
	for _, m := range h.registry.members {
		h.deliver(m.Client, ev)
	}
}

func (h *Hub) broadcastExcept(sender *Client, ev *Event) {
	for _, m := range h.registry.members {
		if m.Client == sender {
			continue
		}
		h.deliver(m.Client, ev)
	}
}

func (h *Hub) closeClient(c *Client) {
	if c.closed {
		return
	}
	c.closed = true
	close(c.Events)
}

// Stats reports current occupancy and the capacity limit. The read goes
// through the run loop, so it observes a consistent snapshot.
func (h *Hub) Stats(ctx context.Context) (count, max int, err error) {
	res, err := h.ask(ctx, query{kind: queryStats})
	if err != nil {
		return 0, 0, err
	}
	return res.count, res.max, nil
}

// RecentEntries returns up to the last n log entries, oldest first.
func (h *Hub) RecentEntries(ctx context.Context, n int) ([]Entry, error) {
	res, err := h.ask(ctx, query{kind: queryHistory, count: n})
	if err != nil {
		return nil, err
	}
	return res.entries, nil
}

func (h *Hub) ask(ctx context.Context, q query) (queryResult, error) {
	q.reply = make(chan queryResult, 1)
	select {
	case h.queries <- q:
	case <-h.done:
		return queryResult{}, ErrHubStopped
	case <-ctx.Done():
		return queryResult{}, ctx.Err()
	}
	select {
	case res := <-q.reply:
		return res, nil
	case <-ctx.Done():
		return queryResult{}, ctx.Err()
	}
}
