package notifier

import (
	"context"
	"strings"

	"MetalWatch/internal/model"
	"MetalWatch/internal/screen"
)

// ListScreen is the part of the list screen the bot drives.
type ListScreen interface {
	View() screen.ListView
	Refresh(ctx context.Context) screen.ListView
}

// DetailOpener opens a detail screen for a metal identifier.
type DetailOpener interface {
	OpenDetail(ctx context.Context, id string) screen.DetailScreenView
}

// Bot maps chat commands onto the screens and renders the result.
type Bot struct {
	List   ListScreen
	Detail DetailOpener
}

// NewBot creates a Bot.
func NewBot(list ListScreen, detail DetailOpener) *Bot {
	return &Bot{List: list, Detail: detail}
}

// HandleCommand processes a user command and returns a reply.
func (b *Bot) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return HelpText()
	}
	// Group chats address commands as /cmd@botname.
	cmd := strings.ToLower(fields[0])
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/prices", "/start":
		return FormatListView(b.List.View())
	case "/refresh":
		return FormatListView(b.List.Refresh(ctx))
	case "/metal":
		if len(fields) < 2 {
			return "Usage: /metal &lt;name&gt;"
		}
		return FormatDetailView(b.Detail.OpenDetail(ctx, fields[1]))
	}

	if sym, err := model.ParseSymbol(strings.TrimPrefix(cmd, "/")); err == nil && strings.HasPrefix(cmd, "/") {
		return FormatDetailView(b.Detail.OpenDetail(ctx, sym.String()))
	}
	return HelpText()
}
