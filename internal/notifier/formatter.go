package notifier

import (
	"fmt"
	"html"
	"strings"

	"MetalWatch/internal/screen"
)

// FormatListView renders the list screen as a Telegram HTML message.
func FormatListView(v screen.ListView) string {
	var b strings.Builder
	b.WriteString("<b>Live Metal Prices</b>\n\n")

	switch v.State {
	case screen.StateLoading:
		b.WriteString("Loading...")
	case screen.StateError:
		b.WriteString("❌ " + html.EscapeString(v.Error))
	case screen.StateReady:
		for _, c := range v.Cards {
			b.WriteString(fmt.Sprintf("<b>%s</b>: %s\n", c.Name, html.EscapeString(c.PriceText)))
			b.WriteString(fmt.Sprintf("   %s · /%s\n", c.Elapsed, c.Symbol))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDetailView renders a detail screen as a Telegram HTML message.
func FormatDetailView(v screen.DetailScreenView) string {
	switch v.State {
	case screen.StateFound:
	case screen.StateLoading:
		return "Loading..."
	default:
		return "❌ " + html.EscapeString(v.Error)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n\n", html.EscapeString(v.Title)))
	for _, l := range v.Lines {
		b.WriteString(fmt.Sprintf("%s: <b>%s</b>\n", l.Label, html.EscapeString(l.Value)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// HelpText lists the bot commands.
func HelpText() string {
	return "Available commands:\n" +
		"• /prices - latest prices\n" +
		"• /refresh - fetch prices again\n" +
		"• /metal &lt;name&gt; - details for one metal (/gold, /silver, /platinum, /palladium)"
}
