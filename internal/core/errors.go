package core

import "errors"

var (
	// ErrRoomFull is returned by Registry.Admit when every slot is taken.
	ErrRoomFull = errors.New("room is full")
	// ErrHubStopped is returned by hub queries after Run has exited.
	ErrHubStopped = errors.New("hub is not running")
)
