package http

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/huddle-server/internal/core"
	"github.com/vovakirdan/huddle-server/internal/proto"
)

// inboundToCommand converts a wire frame into a core command. A nil
// command with a nil error means the frame was malformed or unknown and
// should be dropped without closing the connection.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Type {
	case proto.InboundTypeMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", inbound.Type, err)
		}
		if msg.Text == "" {
			return nil, nil
		}
		return &core.Command{Kind: core.CommandSendMessage, Text: msg.Text}, nil

	case proto.InboundTypeFile:
		var file proto.FileData
		if err := json.Unmarshal(inbound.Data, &file); err != nil {
			return nil, fmt.Errorf("decode %s: %w", inbound.Type, err)
		}
		if file.URL == "" {
			return nil, nil
		}
		return &core.Command{
			Kind: core.CommandSendFile,
			File: &core.MediaRef{
				Kind:     core.ParseMediaKind(file.Type),
				URL:      file.URL,
				Filename: file.Filename,
			},
		}, nil

	case proto.InboundTypeTyping:
		return &core.Command{Kind: core.CommandTyping}, nil

	case proto.InboundTypeStopTyping:
		return &core.Command{Kind: core.CommandStopTyping}, nil

	default:
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	out := proto.Outbound{Type: proto.OutboundTypeEvent}

	switch event.Kind {
	case core.EventWelcome:
		out.Event = proto.EventWelcome
		out.Data = proto.WelcomeData{
			Username: event.User,
			Users:    event.Users,
			Message:  event.Notice,
		}
	case core.EventRoomFull:
		out.Event = proto.EventRoomFull
		out.Data = proto.RoomFullData{Message: event.Notice}
	case core.EventUserJoined:
		out.Event = proto.EventUserJoined
		out.Data = proto.UserJoinedData{Username: event.User, Message: event.Notice}
	case core.EventUserLeft:
		out.Event = proto.EventUserLeft
		out.Data = proto.UserLeftData{
			Username: event.User,
			Message:  event.Notice,
			Users:    event.Users,
		}
	case core.EventHistory:
		out.Event = proto.EventHistory
		out.Data = entriesToData(event.Entries)
	case core.EventMessage:
		out.Event = proto.EventMessage
		out.Data = entryToData(*event.Entry)
	case core.EventFile:
		out.Event = proto.EventFile
		out.Data = entryToData(*event.Entry)
	case core.EventTyping:
		out.Event = proto.EventTyping
		out.Data = event.User
	case core.EventStopTyping:
		out.Event = proto.EventStopTyping
		out.Data = ""
	}

	return out
}

func entryToData(e core.Entry) proto.EntryData {
	data := proto.EntryData{
		ID:        e.ID,
		Username:  e.Author,
		Text:      e.Text,
		Timestamp: e.Timestamp,
	}
	if e.Media != nil {
		data.Type = string(e.Media.Kind)
		data.URL = e.Media.URL
		data.Filename = e.Media.Filename
	}
	return data
}

func entriesToData(entries []core.Entry) []proto.EntryData {
	out := make([]proto.EntryData, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToData(e))
	}
	return out
}
