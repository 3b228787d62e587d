// Package transport emulates a bidirectional push channel: delivery-status
// progression for sent messages, a synthetic reply per send, and unsolicited
// inbound traffic after an idle period. No network is involved; everything
// runs off a Scheduler so tests advance virtual time.
package transport

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/tchat/internal/clock"
	"github.com/matheus3301/tchat/internal/config"
	"github.com/matheus3301/tchat/internal/status"
	"github.com/matheus3301/tchat/internal/store"
	"go.uber.org/zap"
)

// ReplySenderID attributes the synthetic reply sent after each local send.
const ReplySenderID = "user-reply"

// AutoSenderID attributes unsolicited idle-traffic messages.
const AutoSenderID = "user-auto"

const replyText = "Спасибо за информацию!"

var autoTexts = []string{
	"Привет! Как дела?",
	"Интересно, расскажи подробнее",
	"Согласен с тобой",
	"Хорошая идея!",
	"Давай обсудим это позже",
	"Отлично, договорились",
	"Окей, сделаю",
}

// MessageHandler receives inbound messages.
type MessageHandler func(msg store.Message)

// StatusHandler receives delivery-status changes for a message id.
type StatusHandler func(messageID string, st status.Status)

// Simulator stands in for a push connection. Safe for concurrent use; all
// timer callbacks re-enter through the same mutex.
type Simulator struct {
	mu sync.Mutex

	connected    bool
	activeChatID string

	msgHandlers    map[int]MessageHandler
	statusHandlers map[int]StatusHandler
	nextSub        int

	sendTimers []clock.Timer
	idleTimer  clock.Timer
	autoTimer  clock.Timer

	cfg    config.TransportConfig
	sched  clock.Scheduler
	rnd    *rand.Rand
	logger *zap.Logger
}

// New creates a simulator with the given timings and scheduler.
func New(cfg config.TransportConfig, sched clock.Scheduler, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		msgHandlers:    make(map[int]MessageHandler),
		statusHandlers: make(map[int]StatusHandler),
		cfg:            cfg,
		sched:          sched,
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:         logger,
	}
}

// Connect opens the channel. Idempotent.
func (s *Simulator) Connect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return
	}
	s.connected = true
	s.logger.Info("transport connected")
}

// Disconnect tears the channel down and cancels every pending timer. Safe to
// call repeatedly.
func (s *Simulator) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return
	}
	s.connected = false
	s.cancelSendTimersLocked()
	s.cancelIdleLocked()
	s.logger.Info("transport disconnected")
}

// SetActiveChat declares the focused chat ("" for none) and drops any armed
// idle timer or auto-message loop. A pending burst must never leak across a
// chat switch.
func (s *Simulator) SetActiveChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeChatID = chatID
	s.cancelIdleLocked()
}

// SendMessage accepts a locally sent message for the currently active chat
// and schedules its delivery lifecycle: a delivered status, a read status,
// one synthetic reply, and the idle timer that eventually starts auto
// traffic. No-op when no chat is active.
func (s *Simulator) SendMessage(msg store.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.activeChatID == "" {
		return
	}

	s.cancelIdleLocked()

	id := msg.ID
	s.sendTimers = append(s.sendTimers,
		s.sched.AfterFunc(s.delay(s.cfg.DeliveredDelayMs), func() {
			s.emitStatus(id, status.Delivered)
		}),
		s.sched.AfterFunc(s.delay(s.cfg.ReadDelayMs), func() {
			s.emitStatus(id, status.Read)
		}),
		s.sched.AfterFunc(s.delay(s.cfg.ReplyDelayMs), func() {
			s.emitReply()
		}),
	)

	s.idleTimer = s.sched.AfterFunc(s.delay(s.cfg.IdleTimeoutMs), func() {
		s.startAutoMessages()
	})
}

// OnMessage subscribes to inbound messages. The returned function
// unsubscribes and is safe to call from within a handler.
func (s *Simulator) OnMessage(h MessageHandler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.msgHandlers[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.msgHandlers, id)
	}
}

// OnStatusChange subscribes to delivery-status events. Same unsubscribe
// semantics as OnMessage.
func (s *Simulator) OnStatusChange(h StatusHandler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.statusHandlers[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.statusHandlers, id)
	}
}

// startAutoMessages begins the unsolicited-traffic loop: one message now,
// then more at randomized intervals until canceled.
func (s *Simulator) startAutoMessages() {
	s.mu.Lock()
	if s.activeChatID == "" {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.emitAuto()
	s.scheduleNextAuto()
}

func (s *Simulator) scheduleNextAuto() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeChatID == "" {
		return
	}
	interval := s.delay(s.cfg.AutoIntervalMinMs) +
		time.Duration(s.rnd.Int63n(int64(s.delay(s.cfg.AutoIntervalMaxMs-s.cfg.AutoIntervalMinMs))+1))
	s.autoTimer = s.sched.AfterFunc(interval, func() {
		s.emitAuto()
		s.scheduleNextAuto()
	})
}

// emitReply delivers the synthetic reply into whatever chat is active at
// fire time; dropped when none is.
func (s *Simulator) emitReply() {
	s.mu.Lock()
	chatID := s.activeChatID
	s.mu.Unlock()
	if chatID == "" {
		return
	}
	s.emitMessage(store.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  ReplySenderID,
		Text:      replyText,
		Timestamp: s.sched.Now().UnixMilli(),
		Status:    status.Delivered,
	})
}

func (s *Simulator) emitAuto() {
	s.mu.Lock()
	chatID := s.activeChatID
	text := autoTexts[s.rnd.Intn(len(autoTexts))]
	s.mu.Unlock()
	if chatID == "" {
		return
	}
	s.emitMessage(store.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  AutoSenderID,
		Text:      text,
		Timestamp: s.sched.Now().UnixMilli(),
		Status:    status.Delivered,
	})
}

// emitMessage fans msg out to subscribers. Handlers run without the lock so
// they can unsubscribe or call back into the simulator.
func (s *Simulator) emitMessage(msg store.Message) {
	s.mu.Lock()
	handlers := make([]MessageHandler, 0, len(s.msgHandlers))
	for _, h := range s.msgHandlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()
	for _, h := range handlers {
		h(msg)
	}
}

func (s *Simulator) emitStatus(messageID string, st status.Status) {
	s.mu.Lock()
	handlers := make([]StatusHandler, 0, len(s.statusHandlers))
	for _, h := range s.statusHandlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()
	for _, h := range handlers {
		h(messageID, st)
	}
}

// cancelIdleLocked stops the idle timer and the auto loop. Caller holds s.mu.
func (s *Simulator) cancelIdleLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	if s.autoTimer != nil {
		s.autoTimer.Stop()
		s.autoTimer = nil
	}
}

// cancelSendTimersLocked stops outstanding status/reply timers. Caller holds s.mu.
func (s *Simulator) cancelSendTimersLocked() {
	for _, t := range s.sendTimers {
		t.Stop()
	}
	s.sendTimers = nil
}

func (s *Simulator) delay(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
