package core

// CommandKind describes what a connected client wants to do.
type CommandKind int

const (
	// CommandSendMessage posts a text message to the room.
	CommandSendMessage CommandKind = iota
	// CommandSendFile shares an already-uploaded file with the room.
	CommandSendFile
	// CommandTyping announces typing presence to other members.
	CommandTyping
	// CommandStopTyping clears typing presence for other members.
	CommandStopTyping
)

// Command represents an action requested by a client. Commands from
// clients that are not (or no longer) members are dropped silently.
type Command struct {
	Kind CommandKind
	Text string    // CommandSendMessage
	File *MediaRef // CommandSendFile
}
