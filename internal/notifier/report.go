package notifier

import (
	"fmt"
	"strings"
	"time"

	"wolfdice/internal/model"
	"wolfdice/internal/render"
)

// FormatSessionReport formats an end-of-session Telegram message.
func FormatSessionReport(sum *model.SessionSummary) string {
	var b strings.Builder

	icon := "🛑"
	if sum.Reason == model.EndTakeProfit {
		icon = "✅"
	}
	b.WriteString(fmt.Sprintf("%s <b>Session %s</b> | %s\n\n", icon, sum.Reason, time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Profit/Loss: %+.8f %s\n", sum.Profit, strings.ToUpper(sum.Currency)))
	b.WriteString(fmt.Sprintf("Bets: %d (WIN %d / LOSE %d)\n", sum.TotalRounds, sum.Won, sum.Lost))
	b.WriteString(fmt.Sprintf("Runtime: %s\n", render.FormatRuntime(sum.Elapsed)))
	b.WriteString(fmt.Sprintf("Strategy: %s\n", sum.ActiveStrategy))
	return b.String()
}

// FormatHistoryReply wraps the trailing bet table for /history replies.
func FormatHistoryReply(history []model.RoundRecord) string {
	if len(history) == 0 {
		return "No rounds resolved yet."
	}
	return fmt.Sprintf("📜 <b>Last %d rounds</b>\n<pre>%s</pre>", len(history), render.FormatHistoryTable(history))
}

// FormatStats formats the running session snapshot for /status replies.
func FormatStats(stats model.SessionStats, currency string) string {
	var b strings.Builder
	b.WriteString("📈 <b>Session status</b>\n\n")
	b.WriteString(fmt.Sprintf("Profit/Loss: %+.8f %s\n", stats.Profit, strings.ToUpper(currency)))
	b.WriteString(fmt.Sprintf("Bets: %d (WIN %d / LOSE %d)\n", stats.TotalRounds, stats.Won, stats.Lost))
	b.WriteString(fmt.Sprintf("Runtime: %s\n", render.FormatRuntime(stats.Elapsed)))
	b.WriteString(fmt.Sprintf("Strategy: %s\n", stats.ActiveStrategy))
	return b.String()
}
