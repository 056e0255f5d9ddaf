package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventWelcome greets a newly admitted member with its assigned name
	// and the current member list.
	EventWelcome EventKind = iota
	// EventRoomFull tells a rejected connection that no slot is free.
	// The hub closes the client right after sending it.
	EventRoomFull
	// EventUserJoined notifies existing members about a new member.
	EventUserJoined
	// EventUserLeft notifies remaining members about a departure.
	EventUserLeft
	// EventHistory replays recent chat entries to a new member.
	EventHistory
	// EventMessage carries a text entry to every member.
	EventMessage
	// EventFile carries a media entry to every member.
	EventFile
	// EventTyping signals typing presence to everyone but the typist.
	EventTyping
	// EventStopTyping clears typing presence for everyone but the typist.
	EventStopTyping
)

// Event describes something that happened in the room. Only the fields
// relevant to the kind are set.
type Event struct {
	Kind    EventKind
	User    string   // display name the event is about
	Notice  string   // human-readable text accompanying the event
	Users   []string // member-list snapshot, insertion order
	Entry   *Entry   // EventMessage / EventFile
	Entries []Entry  // EventHistory, oldest first
}
