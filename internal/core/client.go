package core

// Client is one connection as seen by the core layer. ID is the opaque
// per-connection identifier assigned by the transport, unique for the
// connection's lifetime.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// closed marks Events as closed. Owned by the hub goroutine; nothing
	// else may touch it.
	closed bool
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}
