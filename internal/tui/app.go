package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tchat/internal/bus"
	"github.com/matheus3301/tchat/internal/config"
	"github.com/matheus3301/tchat/internal/render"
	"github.com/matheus3301/tchat/internal/store"
	"github.com/matheus3301/tchat/internal/transport"
	"github.com/matheus3301/tchat/internal/tui/ui"
	"github.com/matheus3301/tchat/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// App is the main TUI application shell. It renders store snapshots and
// never mutates state directly: every user action goes through the store
// or the transport, and every repaint is driven by bus events.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	store    *store.Store
	tr       *transport.Simulator
	events   *bus.Bus
	boundary *ui.Boundary
	logger   *zap.Logger

	theme     *ui.Theme
	statusBar *views.StatusBar
	chatList  *views.ChatList
	thread    *views.MessageThread
	fallback  *tview.TextView

	lastVersion uint64
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(cfg *config.Config, st *store.Store, tr *transport.Simulator, events *bus.Bus, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()
	window := render.New(cfg.Renderer)

	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		store:     st,
		tr:        tr,
		events:    events,
		boundary:  ui.NewBoundary(),
		logger:    logger,
		theme:     theme,
		statusBar: views.NewStatusBar(),
		chatList:  views.NewChatList(theme),
		thread:    views.NewMessageThread(theme, window, st.LocalUserID()),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetUser("Вы")
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupCallbacks() {
	a.chatList.SetOnSelect(func(chatID string) {
		if chat, ok := a.store.Chat(chatID); ok {
			a.openChat(chat)
		}
	})

	a.thread.SetOnSend(func(text string) {
		chatID := a.store.ActiveChatID()
		if chatID == "" {
			return
		}
		a.store.SendMessage(chatID, text)
		a.app.SetFocus(a.thread.List())
	})
}

func (a *App) setupLayout() {
	main := tview.NewFlex().
		AddItem(a.chatList, 0, 1, true).
		AddItem(a.thread, 0, 3, false)

	a.fallback = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.fallback.SetBorder(true)
	a.fallback.SetBorderColor(a.theme.ErrorColor)
	a.fallback.SetBackgroundColor(a.theme.BgColor)

	a.pages.AddPage("main", main, true, true)
	a.pages.AddPage("fallback", a.fallback, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := a.pages.GetFrontPage()

		if currentPage == "fallback" {
			if event.Key() == tcell.KeyRune && event.Rune() == 'r' {
				a.recoverFromFallback()
			}
			return nil
		}

		if event.Key() == tcell.KeyEscape {
			a.app.SetFocus(a.chatList)
			return nil
		}

		// Let the composer handle all keys normally while focused.
		if _, ok := a.app.GetFocus().(*tview.InputField); ok {
			return event
		}

		if event.Key() == tcell.KeyTab {
			a.cycleFocus()
			return nil
		}

		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 'q':
				a.Stop()
				return nil
			case 'i':
				if a.store.ActiveChatID() != "" {
					a.app.SetFocus(a.thread.Composer())
				}
				return nil
			case 'c':
				a.store.ClearError()
				return nil
			}
		}

		return event
	})
}

func (a *App) cycleFocus() {
	switch a.app.GetFocus() {
	case a.chatList:
		if a.store.ActiveChatID() != "" {
			a.app.SetFocus(a.thread.List())
		}
	default:
		a.app.SetFocus(a.chatList)
	}
}

func (a *App) openChat(chat store.Chat) {
	a.thread.SetChat(chat)
	a.tr.SetActiveChat(chat.ID)
	go a.store.SelectChat(a.ctx, chat.ID)
	a.app.SetFocus(a.thread.List())
}

// refresh repaints the widgets from the current store snapshot. A panic in
// any widget trips the boundary and swaps in the fallback page instead of
// crashing the terminal.
func (a *App) refresh() {
	v := a.store.Version()
	if v == a.lastVersion {
		return
	}
	a.lastVersion = v

	err := a.boundary.Capture(func() {
		a.chatList.Update(a.store.Chats(), a.store.ActiveChatID())
		if id := a.store.ActiveChatID(); id != "" && id == a.thread.ChatID() {
			a.thread.Update(a.store.Messages(id))
		}
		a.statusBar.SetLoading(a.store.IsLoadingChats() || a.store.IsLoadingMessages())
		a.statusBar.SetError(a.store.Err())
	})
	if err != nil {
		a.showFallback(err)
	}
}

func (a *App) showFallback(err error) {
	a.logger.Error("render failed", zap.Error(err))
	a.fallback.SetText(fmt.Sprintf("\n[::b]Что-то пошло не так[-:-:-]\n\n%s\n\n[::d]r — повторить[-:-:-]",
		tview.Escape(err.Error())))
	a.pages.SwitchToPage("fallback")
}

func (a *App) recoverFromFallback() {
	a.boundary.Reset()
	a.pages.SwitchToPage("main")
	a.app.SetFocus(a.chatList)
	a.lastVersion = 0
	a.refresh()
}

// Run starts the TUI event loop and blocks until Stop or a fatal terminal
// error.
func (a *App) Run() error {
	events, unsubscribe := a.events.Subscribe("store.", 64)
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-events:
				a.app.QueueUpdateDraw(a.refresh)
			case <-a.ctx.Done():
				return
			}
		}
	}()

	return a.app.Run()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
