package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"wolfdice/internal/model"
)

// Console renders round results and session reports to the terminal.
// It consumes read-only projections of the session state; it never
// mutates engine state.
type Console struct {
	out      io.Writer
	currency string
}

// NewConsole creates a renderer for the given currency.
func NewConsole(out io.Writer, currency string) *Console {
	return &Console{out: out, currency: strings.ToUpper(currency)}
}

// SessionStart prints the baseline report.
func (c *Console) SessionStart(startBalance float64, strategy string, session int) {
	fmt.Fprintf(c.out, "💰 Starting balance: %.8f %s | session #%d | strategy: %s\n",
		startBalance, c.currency, session, strategy)
}

// Round prints one resolved round followed by the running snapshot.
func (c *Console) Round(rec model.RoundRecord, stats model.SessionStats) {
	outcome := "LOSE"
	if rec.Outcome == model.OutcomeWin {
		outcome = "WIN "
	}
	fmt.Fprintf(c.out, "[#%d] %.2f%s roll=%.2f %s %+.8f | profit %+.8f | next %.8f | %s\n",
		rec.Round, rec.Threshold, rec.Rule.Arrow(), rec.ResultValue,
		outcome, rec.DeltaProfit, stats.Profit, rec.NextWager, stats.ActiveStrategy)
}

// History prints the trailing bet table. Nothing is printed for an
// empty session.
func (c *Console) History(history []model.RoundRecord) {
	if len(history) == 0 {
		return
	}
	fmt.Fprintf(c.out, "📜 Last %d rounds\n%s", len(history), FormatHistoryTable(history))
}

// Summary prints the end-of-session report.
func (c *Console) Summary(sum model.SessionSummary) {
	fmt.Fprint(c.out, FormatSummary(sum, c.currency))
}

// FormatSummary formats the end-of-session report.
func FormatSummary(sum model.SessionSummary, currency string) string {
	var b strings.Builder

	b.WriteString("📊 Session summary\n")
	b.WriteString(fmt.Sprintf("  Starting balance: %.8f %s\n", sum.StartBalance, currency))
	b.WriteString(fmt.Sprintf("  Current balance:  %.8f %s\n", sum.StartBalance+sum.Profit, currency))
	b.WriteString(fmt.Sprintf("  Profit/Loss:      %+.8f %s\n", sum.Profit, currency))
	b.WriteString(fmt.Sprintf("  Bets:             %d (WIN %d / LOSE %d)\n", sum.TotalRounds, sum.Won, sum.Lost))
	b.WriteString(fmt.Sprintf("  Runtime:          %s\n", FormatRuntime(sum.Elapsed)))
	if sec := sum.Elapsed.Seconds(); sec >= 1 {
		b.WriteString(fmt.Sprintf("  Speed:            %.2f bets/sec\n", float64(sum.TotalRounds)/sec))
	}
	b.WriteString(fmt.Sprintf("  Strategy:         %s\n", sum.ActiveStrategy))
	b.WriteString(fmt.Sprintf("  End reason:       %s\n", sum.Reason))
	return b.String()
}

// FormatHistoryTable formats the trailing round history, oldest first.
func FormatHistoryTable(history []model.RoundRecord) string {
	var b strings.Builder
	b.WriteString("Target    Result   Bet Next     W/L   Profit\n")
	for _, rec := range history {
		outcome := "LOSE"
		if rec.Outcome == model.OutcomeWin {
			outcome = "WIN"
		}
		b.WriteString(fmt.Sprintf("%6.2f%s  %7.2f  %.8f  %-4s  %+.8f\n",
			rec.Threshold, rec.Rule.Arrow(), rec.ResultValue, rec.NextWager, outcome, rec.DeltaProfit))
	}
	return b.String()
}

// FormatRuntime renders an elapsed duration as HH:MM:SS.
func FormatRuntime(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}
