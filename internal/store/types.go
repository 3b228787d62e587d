package store

import "github.com/matheus3301/tchat/internal/status"

// User identifies a chat participant or the local user. Immutable.
type User struct {
	ID     string
	Name   string
	Avatar string
}

// Message is a single chat message. Only Status changes after creation.
type Message struct {
	ID        string
	ChatID    string
	SenderID  string
	Text      string
	Timestamp int64 // epoch millis
	Status    status.Status
}

// Chat is a conversation. LastMessage caches the most recently appended
// message for the chat, by arrival order.
type Chat struct {
	ID           string
	Name         string
	Avatar       string
	LastMessage  *Message
	Participants []User
}
