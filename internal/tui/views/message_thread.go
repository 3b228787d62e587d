package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tchat/internal/render"
	"github.com/matheus3301/tchat/internal/store"
	"github.com/matheus3301/tchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// unitsPerLine maps one terminal line to the window's abstract height units,
// so the configured estimate (60 units) comes out as three lines per message.
const unitsPerLine = 20

// MessageThread displays the active chat's virtualized message list and a
// composer for sending.
type MessageThread struct {
	*tview.Flex
	theme    *ui.Theme
	list     *messagesView
	composer *tview.InputField
	chat     store.Chat
	onSend   func(text string)
}

// NewMessageThread creates the thread view.
func NewMessageThread(theme *ui.Theme, window *render.Window, localUserID string) *MessageThread {
	list := newMessagesView(theme, window, localUserID)

	composer := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0)
	composer.SetBorder(true)
	composer.SetBorderColor(theme.BorderColor)
	composer.SetBackgroundColor(theme.BgColor)
	composer.SetFieldBackgroundColor(theme.BgColor)
	composer.SetFieldTextColor(theme.FgColor)
	composer.SetLabelColor(theme.BorderFocusColor)
	composer.SetTitle(" Сообщение (i — ввод) ")
	composer.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(list, 0, 1, true).
		AddItem(composer, 3, 0, false)

	mt := &MessageThread{
		Flex:     flex,
		theme:    theme,
		list:     list,
		composer: composer,
	}

	composer.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && mt.onSend != nil {
			text := composer.GetText()
			if text != "" {
				mt.onSend(text)
				composer.SetText("")
			}
		}
	})

	return mt
}

// SetOnSend sets the callback fired when the composer submits.
func (mt *MessageThread) SetOnSend(fn func(text string)) {
	mt.onSend = fn
}

// SetChat switches the thread to a different chat. The window and scroll
// state reset: nothing carries over between chats.
func (mt *MessageThread) SetChat(chat store.Chat) {
	mt.chat = chat
	mt.list.SetTitle(fmt.Sprintf(" %s ", sanitizeForTerminal(chat.Name)))
	mt.list.resetForChat(chat)
}

// ChatID returns the id of the displayed chat, or empty.
func (mt *MessageThread) ChatID() string {
	return mt.chat.ID
}

// Update refreshes the thread with the chat's current message sequence.
func (mt *MessageThread) Update(msgs []store.Message) {
	mt.list.SetMessages(msgs)
}

// List returns the message area (for focus management).
func (mt *MessageThread) List() tview.Primitive {
	return mt.list
}

// Composer returns the input field (for focus management).
func (mt *MessageThread) Composer() *tview.InputField {
	return mt.composer
}

// messagesView draws only the rows of the virtualization window. Row heights
// are measured as they are formatted, correcting the window's estimates.
type messagesView struct {
	*tview.Box
	theme       *ui.Theme
	window      *render.Window
	localUserID string

	msgs      []store.Message
	chat      store.Chat
	scrollTop int // units
	atBottom  bool
	lastH     int // viewport lines at last draw
}

func newMessagesView(theme *ui.Theme, window *render.Window, localUserID string) *messagesView {
	v := &messagesView{
		Box:         tview.NewBox(),
		theme:       theme,
		window:      window,
		localUserID: localUserID,
		atBottom:    true,
	}
	v.SetBorder(true)
	v.SetBorderColor(theme.BorderColor)
	v.SetBackgroundColor(theme.BgColor)
	v.SetTitle(" Сообщения ")
	v.SetTitleColor(theme.TitleColor)
	return v
}

func (v *messagesView) resetForChat(chat store.Chat) {
	v.chat = chat
	v.msgs = nil
	v.window.Reset()
	v.scrollTop = 0
	v.atBottom = true
}

// SetMessages replaces the displayed sequence. On growth the view follows
// the new tail for own messages, or when the reader was already near the
// bottom before the append.
func (v *messagesView) SetMessages(msgs []store.Message) {
	prev := len(v.msgs)
	v.msgs = msgs
	v.window.SetCount(len(msgs))

	if len(msgs) > prev && len(msgs) > 0 {
		own := msgs[len(msgs)-1].SenderID == v.localUserID
		if prev == 0 || v.window.Follow(own, v.atBottom) {
			v.scrollToBottom()
		}
	}
}

func (v *messagesView) scrollToBottom() {
	v.scrollTop = v.window.BottomOffset(v.lastH * unitsPerLine)
	v.atBottom = true
}

// Draw implements tview.Primitive. Only the window's index range is
// formatted and drawn; thousands of off-screen messages cost nothing.
func (v *messagesView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, w, h := v.GetInnerRect()
	if w <= 0 || h <= 0 {
		return
	}
	v.lastH = h

	viewport := h * unitsPerLine
	if v.atBottom {
		v.scrollTop = v.window.BottomOffset(viewport)
	}
	if max := v.window.BottomOffset(viewport); v.scrollTop > max {
		v.scrollTop = max
	}

	start, end := v.window.Range(v.scrollTop, viewport)
	for i := start; i < end; i++ {
		lines := v.formatMessage(i, w)
		v.window.Measure(i, len(lines)*unitsPerLine)

		top := (v.window.OffsetOf(i) - v.scrollTop) / unitsPerLine
		for li, line := range lines {
			row := top + li
			if row < 0 || row >= h {
				continue
			}
			tview.Print(screen, line, x, y+row, w, tview.AlignLeft, v.theme.FgColor)
		}
	}
}

// formatMessage renders message i as header, wrapped body, and a separator
// line.
func (v *messagesView) formatMessage(i, width int) []string {
	m := v.msgs[i]
	own := m.SenderID == v.localUserID

	header := fmt.Sprintf("[::b]%s[-:-:-] [::d]%s[-:-:-]",
		tview.Escape(v.senderName(m.SenderID)), formatMessageTime(m.Timestamp))
	if own {
		header += " " + m.Status.Icon()
	}

	lines := []string{header}
	lines = append(lines, tview.WordWrap(tview.Escape(sanitizeForTerminal(m.Text)), width)...)
	return append(lines, "")
}

func (v *messagesView) senderName(senderID string) string {
	if senderID == v.localUserID {
		return "Вы"
	}
	for _, p := range v.chat.Participants {
		if p.ID == senderID {
			return sanitizeForTerminal(p.Name)
		}
	}
	return sanitizeForTerminal(v.chat.Name)
}

// InputHandler implements tview.Primitive: scrolling unpins the view from
// the bottom unless the reader lands back inside the near-bottom threshold.
func (v *messagesView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, _ func(p tview.Primitive)) {
		viewport := v.lastH * unitsPerLine
		switch {
		case event.Key() == tcell.KeyUp:
			v.scrollBy(-unitsPerLine, viewport)
		case event.Key() == tcell.KeyDown:
			v.scrollBy(unitsPerLine, viewport)
		case event.Key() == tcell.KeyPgUp:
			v.scrollBy(-viewport, viewport)
		case event.Key() == tcell.KeyPgDn:
			v.scrollBy(viewport, viewport)
		case event.Key() == tcell.KeyHome:
			v.scrollTop = 0
			v.atBottom = v.window.NearBottom(v.scrollTop, viewport)
		case event.Key() == tcell.KeyEnd:
			v.scrollToBottom()
		case event.Key() == tcell.KeyRune && event.Rune() == 'g':
			v.scrollTop = 0
			v.atBottom = v.window.NearBottom(v.scrollTop, viewport)
		case event.Key() == tcell.KeyRune && event.Rune() == 'G':
			v.scrollToBottom()
		}
	})
}

func (v *messagesView) scrollBy(delta, viewport int) {
	v.scrollTop += delta
	if v.scrollTop < 0 {
		v.scrollTop = 0
	}
	if max := v.window.BottomOffset(viewport); v.scrollTop > max {
		v.scrollTop = max
	}
	v.atBottom = v.window.NearBottom(v.scrollTop, viewport)
}
