// Package source is the data source behind the store's fetch operations:
// a seeded in-memory SQLite database served with simulated request latency.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/matheus3301/tchat/internal/config"
	"github.com/matheus3301/tchat/internal/status"
	"github.com/matheus3301/tchat/internal/store"
	"go.uber.org/zap"
)

// DataSource serves the seeded chat list and message histories.
type DataSource struct {
	db     *DB
	cfg    config.SeedConfig
	rnd    *rand.Rand
	logger *zap.Logger
}

// New opens the in-memory database, applies migrations, and seeds it.
func New(cfg config.SeedConfig, localUserID string, logger *zap.Logger) (*DataSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := Open()
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	if err := db.seed(cfg, localUserID, rnd); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("dataset seeded",
		zap.Int("chats", cfg.Chats),
		zap.Duration("took", time.Since(start)))

	return &DataSource{db: db, cfg: cfg, rnd: rnd, logger: logger}, nil
}

// Close releases the database.
func (ds *DataSource) Close() error {
	return ds.db.Close()
}

// ListChats returns all chats in seed order, each with its participants and
// last message.
func (ds *DataSource) ListChats(ctx context.Context) ([]store.Chat, error) {
	if err := ds.sleep(ctx, ds.cfg.ChatsDelayMinMs, ds.cfg.ChatsDelayMaxMs); err != nil {
		return nil, err
	}

	rows, err := ds.db.Query(`SELECT id, name, avatar FROM chats ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chats []store.Chat
	for rows.Next() {
		var c store.Chat
		if err := rows.Scan(&c.ID, &c.Name, &c.Avatar); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range chats {
		if chats[i].Participants, err = ds.participants(chats[i].ID); err != nil {
			return nil, err
		}
		last, err := ds.lastMessage(chats[i].ID)
		if err != nil {
			return nil, err
		}
		chats[i].LastMessage = last
	}
	return chats, nil
}

// ListMessages returns the full message history for chatID in insertion
// order, so the store's arrival-order contract holds from the first fetch.
func (ds *DataSource) ListMessages(ctx context.Context, chatID string) ([]store.Message, error) {
	if err := ds.sleep(ctx, ds.cfg.MsgsDelayMinMs, ds.cfg.MsgsDelayMaxMs); err != nil {
		return nil, err
	}

	rows, err := ds.db.Query(`
		SELECT id, chat_id, sender_id, text, timestamp, status
		FROM messages
		WHERE chat_id = ?
		ORDER BY seq`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []store.Message
	for rows.Next() {
		var m store.Message
		var st string
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.Timestamp, &st); err != nil {
			return nil, err
		}
		m.Status = status.Status(st)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (ds *DataSource) participants(chatID string) ([]store.User, error) {
	rows, err := ds.db.Query(
		`SELECT user_id, name, avatar FROM participants WHERE chat_id = ? ORDER BY position`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []store.User
	for rows.Next() {
		var u store.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (ds *DataSource) lastMessage(chatID string) (*store.Message, error) {
	var m store.Message
	var st string
	err := ds.db.QueryRow(`
		SELECT id, chat_id, sender_id, text, timestamp, status
		FROM messages
		WHERE chat_id = ?
		ORDER BY seq DESC
		LIMIT 1`, chatID).
		Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.Timestamp, &st)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Status = status.Status(st)
	return &m, nil
}

// sleep simulates request latency, honoring ctx cancellation.
func (ds *DataSource) sleep(ctx context.Context, minMs, maxMs int) error {
	if maxMs <= 0 {
		return nil
	}
	d := minMs
	if maxMs > minMs {
		d += ds.rnd.Intn(maxMs - minMs)
	}
	select {
	case <-time.After(time.Duration(d) * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
