package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/tchat/internal/bus"
	"github.com/matheus3301/tchat/internal/status"
	"go.uber.org/zap"
)

// Fallback error strings shown when a data source failure carries no message.
const (
	fallbackChatsError    = "Ошибка загрузки чатов"
	fallbackMessagesError = "Ошибка загрузки сообщений"
)

// Source is the chat-list/message-list data source behind the fetch
// operations.
type Source interface {
	ListChats(ctx context.Context) ([]Chat, error)
	ListMessages(ctx context.Context, chatID string) ([]Message, error)
}

// Sender receives freshly sent local messages; the transport simulator
// implements it. Sends are fire-and-forget.
type Sender interface {
	SendMessage(msg Message)
}

// Store is the single source of truth for chat and message state. Every
// mutation funnels through it and is applied atomically under one mutex;
// a monotonic version counter lets readers detect change cheaply.
type Store struct {
	mu sync.Mutex

	chats             []Chat
	activeChatID      string
	messages          map[string][]Message
	isLoadingChats    bool
	isLoadingMessages bool
	err               string
	version           uint64

	localUserID string
	source      Source
	sender      Sender
	bus         *bus.Bus
	logger      *zap.Logger
}

// New creates a store for the given local user.
func New(localUserID string, source Source, sender Sender, b *bus.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		messages:    make(map[string][]Message),
		localUserID: localUserID,
		source:      source,
		sender:      sender,
		bus:         b,
		logger:      logger,
	}
}

// FetchChats loads the chat list from the data source. The loading flag is
// set for the duration of the call; a failure lands in the error string and
// leaves any previously fetched chats untouched. Concurrent calls are not
// deduplicated: in practice the app fetches once per lifecycle.
func (s *Store) FetchChats(ctx context.Context) {
	s.mu.Lock()
	s.isLoadingChats = true
	s.err = ""
	s.bump(bus.KindChatsUpdated)
	s.mu.Unlock()

	chats, err := s.source.ListChats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoadingChats = false
	if err != nil {
		s.err = errorText(err, fallbackChatsError)
		s.logger.Warn("chat list fetch failed", zap.Error(err))
		s.bump(bus.KindError)
		return
	}
	s.chats = chats
	s.bump(bus.KindChatsUpdated)
}

// SelectChat makes chatID the active chat and fetches its messages unless
// they are already loaded (cache-forever: a loaded chat is never refetched).
func (s *Store) SelectChat(ctx context.Context, chatID string) {
	s.mu.Lock()
	s.activeChatID = chatID
	_, loaded := s.messages[chatID]
	s.bump(bus.KindChatsUpdated)
	s.mu.Unlock()

	if !loaded {
		s.FetchMessages(ctx, chatID)
	}
}

// FetchMessages loads the full message list for chatID from the data source,
// replacing any prior sequence for that chat. Error handling mirrors
// FetchChats with a distinct fallback string.
func (s *Store) FetchMessages(ctx context.Context, chatID string) {
	s.mu.Lock()
	s.isLoadingMessages = true
	s.err = ""
	s.bump(bus.KindMessagesUpdated)
	s.mu.Unlock()

	msgs, err := s.source.ListMessages(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoadingMessages = false
	if err != nil {
		s.err = errorText(err, fallbackMessagesError)
		s.logger.Warn("message fetch failed", zap.String("chat_id", chatID), zap.Error(err))
		s.bump(bus.KindError)
		return
	}
	s.messages[chatID] = msgs
	s.bump(bus.KindMessagesUpdated)
}

// SendMessage appends an optimistic local message to chatID and forwards it
// to the transport. Empty or whitespace-only text is a silent no-op. The
// append is synchronous; nothing waits on the transport.
func (s *Store) SendMessage(chatID, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	msg := Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  s.localUserID,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
		Status:    status.Sent,
	}

	s.mu.Lock()
	s.append(msg)
	s.bump(bus.KindMessageAppended)
	s.mu.Unlock()

	// Forwarded outside the lock: transport callbacks re-enter the store.
	if s.sender != nil {
		s.sender.SendMessage(msg)
	}
}

// AddIncomingMessage appends a transport-delivered message to its chat,
// whether or not that chat is active.
func (s *Store) AddIncomingMessage(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(msg)
	s.bump(bus.KindMessageAppended)
}

// UpdateMessageStatus sets the status of the message with the given id. The
// active chat is searched first; other chats are scanned as a fallback. An
// unknown id is a silent no-op: a status event racing a chat switch is not
// an error.
func (s *Store) UpdateMessageStatus(messageID string, st status.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeChatID != "" {
		if s.setStatus(s.activeChatID, messageID, st) {
			s.bump(bus.KindStatusUpdated)
			return
		}
	}
	for chatID := range s.messages {
		if chatID == s.activeChatID {
			continue
		}
		if s.setStatus(chatID, messageID, st) {
			s.bump(bus.KindStatusUpdated)
			return
		}
	}
}

// ClearError resets the error string.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == "" {
		return
	}
	s.err = ""
	s.bump(bus.KindError)
}

// Reset restores the store to its initial empty state. Test support.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = nil
	s.activeChatID = ""
	s.messages = make(map[string][]Message)
	s.isLoadingChats = false
	s.isLoadingMessages = false
	s.err = ""
	s.version++
}

// Chats returns a snapshot of the chat list.
func (s *Store) Chats() []Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Chat, len(s.chats))
	copy(out, s.chats)
	for i := range out {
		if out[i].LastMessage != nil {
			last := *out[i].LastMessage
			out[i].LastMessage = &last
		}
	}
	return out
}

// Chat returns the chat with the given id.
func (s *Store) Chat(chatID string) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.ID == chatID {
			if c.LastMessage != nil {
				last := *c.LastMessage
				c.LastMessage = &last
			}
			return c, true
		}
	}
	return Chat{}, false
}

// Messages returns a snapshot of the message sequence for chatID, in
// arrival order.
func (s *Store) Messages(chatID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[chatID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// ActiveChatID returns the focused chat id, or empty.
func (s *Store) ActiveChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeChatID
}

// IsLoadingChats reports whether a chat-list fetch is in flight.
func (s *Store) IsLoadingChats() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoadingChats
}

// IsLoadingMessages reports whether a message fetch is in flight.
func (s *Store) IsLoadingMessages() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoadingMessages
}

// Err returns the current error string, or empty.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// LocalUserID returns the id messages are sent as.
func (s *Store) LocalUserID() string {
	return s.localUserID
}

// Version returns the mutation counter. Readers compare it against the last
// value they rendered to skip redundant work.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// append adds msg to its chat's sequence and refreshes the chat's
// LastMessage cache. Caller must hold s.mu.
func (s *Store) append(msg Message) {
	s.messages[msg.ChatID] = append(s.messages[msg.ChatID], msg)
	for i := range s.chats {
		if s.chats[i].ID == msg.ChatID {
			last := msg
			s.chats[i].LastMessage = &last
			break
		}
	}
}

// setStatus updates a message in place. Caller must hold s.mu.
func (s *Store) setStatus(chatID, messageID string, st status.Status) bool {
	msgs := s.messages[chatID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Status = st
			return true
		}
	}
	return false
}

// bump increments the version and publishes a bus event. Caller must hold s.mu.
func (s *Store) bump(kind string) {
	s.version++
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now()})
	}
}

// errorText extracts a human-readable message from err, falling back to the
// given localized string when the failure carries no message.
func errorText(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
