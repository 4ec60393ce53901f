package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"StockWatch/internal/dashboard"
	"StockWatch/internal/model"
	"StockWatch/internal/watchlist"
)

// HelpText lists the bot commands.
const HelpText = "📈 <b>Stock Watchlist</b>\n\n" +
	"/refresh - show the watchlist overview (alias /watchlist)\n" +
	"/list - show the tickers being watched\n" +
	"/add SYM - validate and add a ticker\n" +
	"/remove SYM - remove a ticker\n" +
	"/help - this message"

// FormatView formats a refreshed watchlist as a Telegram message.
func FormatView(v *dashboard.View) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>Watchlist Overview</b> | %s", v.FetchedAt.Format("2006-01-02 15:04")))
	if v.Cached {
		b.WriteString(" (cached)")
	}
	b.WriteString("\n\n")

	for _, r := range v.Rows {
		b.WriteString(fmt.Sprintf("<b>%s</b> %s\n", html.EscapeString(r.Ticker), html.EscapeString(r.Name)))
		b.WriteString(fmt.Sprintf("  %s  %s 1D %+.2f%%  %s 3D %+.2f%%\n",
			r.Price, heat(r.Return1D), r.Return1D, heat(r.Return3D), r.Return3D))
		b.WriteString(fmt.Sprintf("  Vol %s | Cap %s | %s\n", r.Volume, r.MarketCap, html.EscapeString(r.Sector)))
		b.WriteString(fmt.Sprintf("  <a href=\"%s\">chart</a>\n", html.EscapeString(r.ChartURL)))
	}

	if len(v.Failures) > 0 {
		b.WriteString("\n")
		b.WriteString(formatFailures(v.Failures))
	}
	return b.String()
}

// heat maps a return onto a coarse colour scale.
func heat(ret float64) string {
	switch {
	case ret >= watchlist.HeatmapMax:
		return "🟩"
	case ret > 0:
		return "🟢"
	case ret <= watchlist.HeatmapMin:
		return "🟥"
	case ret < 0:
		return "🔴"
	default:
		return "⚪"
	}
}

func formatFailures(failures []model.TickerFailure) string {
	var b strings.Builder
	for _, f := range failures {
		b.WriteString(fmt.Sprintf("⚠️ Could not fetch data for %s: %s\n",
			html.EscapeString(f.Ticker), html.EscapeString(f.Reason)))
	}
	return b.String()
}

// FormatWatchlist lists the tickers in order.
func FormatWatchlist(tickers []string) string {
	if len(tickers) == 0 {
		return "ℹ️ Your watchlist is empty. Add tickers with /add SYM."
	}
	return fmt.Sprintf("📋 <b>Current Watchlist</b> (%d)\n\n%s",
		len(tickers), html.EscapeString(strings.Join(tickers, ", ")))
}

// FormatError turns a dashboard error into a user-facing reply.
func FormatError(err error) string {
	var eb *dashboard.EmptyBatchError
	switch {
	case errors.Is(err, dashboard.ErrEmptyWatchlist):
		return FormatWatchlist(nil)
	case errors.As(err, &eb):
		return "❌ Could not fetch data for any tickers in your watchlist. Please try again later.\n\n" +
			formatFailures(eb.Failures)
	case errors.Is(err, dashboard.ErrInvalidTicker), errors.Is(err, dashboard.ErrUnknownTicker):
		return "❌ " + html.EscapeString(capitalize(err.Error())) + "."
	case errors.Is(err, dashboard.ErrDuplicateTicker):
		return "⚠️ " + html.EscapeString(err.Error()) + "."
	default:
		return "❌ Refresh failed: " + html.EscapeString(err.Error())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
