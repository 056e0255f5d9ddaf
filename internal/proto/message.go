package proto

import "encoding/json"

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound frame types.
const (
	InboundTypeMessage    = "send_message"
	InboundTypeFile       = "send_file"
	InboundTypeTyping     = "typing"
	InboundTypeStopTyping = "stop_typing"
)

// OutboundTypeEvent tags every frame the server pushes.
const OutboundTypeEvent = "event"

// Outbound event names.
const (
	EventWelcome    = "welcome"
	EventRoomFull   = "room_full"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventHistory    = "message_history"
	EventMessage    = "receive_message"
	EventFile       = "receive_file"
	EventTyping     = "user_typing"
	EventStopTyping = "user_stopped_typing"
)

// MessageData is a text message from the client.
type MessageData struct {
	Text string `json:"text"`
}

// FileData references a file the client already uploaded via POST /upload.
type FileData struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// WelcomeData greets the newly admitted member.
type WelcomeData struct {
	Username string   `json:"username"`
	Users    []string `json:"users"`
	Message  string   `json:"message"`
}

// RoomFullData is sent to a rejected connection before it is closed.
type RoomFullData struct {
	Message string `json:"message"`
}

// UserJoinedData notifies existing members about a newcomer.
type UserJoinedData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// UserLeftData notifies remaining members about a departure, including
// the updated member list.
type UserLeftData struct {
	Username string   `json:"username"`
	Message  string   `json:"message"`
	Users    []string `json:"users"`
}

// EntryData is one chat entry on the wire. Text entries carry Text;
// media entries carry Type/URL/Filename.
type EntryData struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text,omitempty"`
	Type      string `json:"type,omitempty"`
	URL       string `json:"url,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Timestamp string `json:"timestamp"`
}
