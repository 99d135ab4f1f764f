package domain

import (
	"time"

	"github.com/google/uuid"
)

// Broadcast is the recipient sentinel for room-wide messages.
const Broadcast = "Todos"

// Status texts announced when a participant enters or leaves the room.
const (
	StatusJoined = "entra na sala..."
	StatusLeft   = "sai da sala..."
)

// TimeLayout is the wall-clock format messages are stamped with. The room is
// ephemeral and single-day in intended use, so the date component is dropped.
const TimeLayout = "15:04:05"

// MessageType is the closed set of message kinds the store accepts.
type MessageType string

const (
	// TypePublic is a regular message readable by everyone.
	TypePublic MessageType = "message"
	// TypePrivate is readable only by its sender and named recipient.
	TypePrivate MessageType = "private_message"
	// TypeStatus is a synthetic join/leave notice, always public and never
	// authored by clients.
	TypeStatus MessageType = "status"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case TypePublic, TypePrivate, TypeStatus:
		return true
	}
	return false
}

// Message is one entry of the room's ordered log.
type Message struct {
	ID   uuid.UUID   `json:"id"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	Time string      `json:"time"`
}

// NewMessage stamps a fresh message. ID, From and Time are fixed for the
// message's lifetime; only To, Text and Type may change afterwards.
func NewMessage(from, to, text string, typ MessageType, now time.Time) *Message {
	return &Message{
		ID:   uuid.New(),
		From: from,
		To:   to,
		Text: text,
		Type: typ,
		Time: now.Format(TimeLayout),
	}
}

// NewStatusMessage synthesizes a public join/leave notice for name.
func NewStatusMessage(name, text string, now time.Time) *Message {
	return NewMessage(name, Broadcast, text, TypeStatus, now)
}

// VisibleTo decides whether requester may read the message. Private messages
// are the only non-public kind; everything else is visible to all requesters.
func (m *Message) VisibleTo(requester string) bool {
	switch m.Type {
	case TypePublic, TypeStatus:
		return true
	case TypePrivate:
		return m.From == requester || m.To == requester
	}
	return false
}
