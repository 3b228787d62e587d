package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tchat/internal/store"
	"github.com/matheus3301/tchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ChatList is the sidebar chat table.
type ChatList struct {
	*tview.Table
	theme    *ui.Theme
	chats    []store.Chat
	onSelect func(chatID string)
}

// NewChatList creates the chat list.
func NewChatList(theme *ui.Theme) *ChatList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Чаты ")
	table.SetBackgroundColor(theme.BgColor)
	table.SetBorderColor(theme.BorderColor)
	table.SetTitleColor(theme.TitleColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	cl := &ChatList{Table: table, theme: theme}
	table.SetSelectedFunc(func(row, _ int) {
		if cl.onSelect == nil {
			return
		}
		if id := cl.chatAt(row); id != "" {
			cl.onSelect(id)
		}
	})
	return cl
}

// SetOnSelect sets the callback invoked when a chat is chosen.
func (cl *ChatList) SetOnSelect(fn func(chatID string)) {
	cl.onSelect = fn
}

// Update refreshes the table from the store's chat list.
func (cl *ChatList) Update(chats []store.Chat, activeChatID string) {
	cl.chats = chats
	cl.Clear()

	for i, chat := range chats {
		name := sanitizeForTerminal(chat.Name)
		if chat.ID == activeChatID {
			name = "» " + name
		}

		preview := ""
		ts := ""
		if chat.LastMessage != nil {
			preview = truncate(sanitizeForTerminal(chat.LastMessage.Text), 40)
			ts = formatChatTime(chat.LastMessage.Timestamp)
		}

		cl.SetCell(i, 0, tview.NewTableCell(" "+tview.Escape(name)).SetMaxWidth(20).SetExpansion(1))
		cl.SetCell(i, 1, tview.NewTableCell(" "+tview.Escape(preview)).SetMaxWidth(40).SetExpansion(2))
		cl.SetCell(i, 2, tview.NewTableCell(fmt.Sprintf(" %s", ts)).SetMaxWidth(8))
	}
}

// SelectedChat returns the id of the chat under the cursor.
func (cl *ChatList) SelectedChat() string {
	row, _ := cl.GetSelection()
	return cl.chatAt(row)
}

func (cl *ChatList) chatAt(row int) string {
	if row >= 0 && row < len(cl.chats) {
		return cl.chats[row].ID
	}
	return ""
}
