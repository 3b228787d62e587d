package source

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/matheus3301/tchat/internal/config"
	"github.com/matheus3301/tchat/internal/status"
)

var chatNames = []string{
	"Алексей", "Мария", "Дмитрий", "Анна", "Сергей", "Елена", "Иван", "Ольга",
}

var messageTexts = []string{
	"Привет! Как дела?",
	"Отлично, спасибо!",
	"Что делаешь?",
	"Работаю над проектом",
	"Интересно, расскажи подробнее",
	"Это новый мессенджер",
	"Круто! Когда будет готов?",
	"Скоро, осталось немного",
	"Удачи с проектом!",
	"Спасибо!",
	"Давай созвонимся завтра",
	"Хорошо, во сколько?",
	"В 15:00 удобно?",
	"Да, договорились",
	"До связи!",
}

func avatarURL(seed string) string {
	return "https://api.dicebear.com/9.x/shapes/svg?seed=" + seed
}

// seed populates the database with generated chats and message histories.
// Each chat gets one participant and several thousand messages, minute-spaced
// so the newest message carries a recent timestamp.
func (db *DB) seed(cfg config.SeedConfig, localUserID string, rnd *rand.Rand) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UnixMilli()
	chatCount := cfg.Chats
	if chatCount > len(chatNames) {
		chatCount = len(chatNames)
	}

	for i := 0; i < chatCount; i++ {
		chatID := fmt.Sprintf("chat-%d", i)
		userID := fmt.Sprintf("user-%d", i)
		name := chatNames[i]

		if _, err := tx.Exec(
			`INSERT INTO chats (id, name, avatar, position) VALUES (?, ?, ?, ?)`,
			chatID, name, avatarURL(name), i); err != nil {
			return fmt.Errorf("insert chat: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO participants (chat_id, user_id, name, avatar, position) VALUES (?, ?, ?, ?, ?)`,
			chatID, userID, name, avatarURL(name), 0); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}

		count := cfg.MinMessages
		if cfg.ExtraMessages > 0 {
			count += rnd.Intn(cfg.ExtraMessages)
		}
		stmt, err := tx.Prepare(
			`INSERT INTO messages (id, chat_id, sender_id, text, timestamp, status) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare message insert: %w", err)
		}
		for j := 0; j < count; j++ {
			sender := userID
			if rnd.Intn(2) == 0 {
				sender = localUserID
			}
			ts := now - int64(count-j)*60000
			if _, err := stmt.Exec(
				fmt.Sprintf("msg-%s-%d", chatID, j),
				chatID, sender,
				messageTexts[rnd.Intn(len(messageTexts))],
				ts, string(status.Delivered)); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("insert message: %w", err)
			}
		}
		_ = stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
