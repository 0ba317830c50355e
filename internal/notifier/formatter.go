package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"SignalSentinel/internal/model"
)

// TimeLayout renders bar timestamps in report lines.
const TimeLayout = "2006-01-02 15:04:05"

// FormatSignalLine renders one event as
// "Buy Signal: Buy at {close} on {timestamp}" or the sell equivalent.
func FormatSignalLine(evt model.SignalEvent) string {
	verb := "Buy"
	if evt.Side == model.SideSell {
		verb = "Sell"
	}
	return fmt.Sprintf("%s Signal: %s at %s on %s",
		verb, verb, formatPrice(evt.Price), evt.Time.Format(TimeLayout))
}

// formatPrice prints the shortest decimal form of a close; NaN and Inf
// cannot be represented by decimal and fall back to %v.
func formatPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Sprintf("%v", p)
	}
	return decimal.NewFromFloat(p).String()
}

// SplitMessages packs lines into messages of at most limit characters,
// breaking only between lines. A single line over the limit is truncated.
func SplitMessages(lines []string, limit int) []string {
	var (
		msgs   []string
		cur    strings.Builder
		curLen int
	)
	for _, line := range lines {
		if r := []rune(line); len(r) > limit {
			line = string(r[:limit])
		}
		n := utf8.RuneCountInString(line)
		if curLen > 0 && curLen+1+n > limit {
			msgs = append(msgs, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte('\n')
			curLen++
		}
		cur.WriteString(line)
		curLen += n
	}
	if curLen > 0 {
		msgs = append(msgs, cur.String())
	}
	return msgs
}

// FormatSignalBatch joins the lines of several events into one message body.
func FormatSignalBatch(events []model.SignalEvent) string {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = FormatSignalLine(e)
	}
	return strings.Join(lines, "\n")
}

// FormatStatus summarises the latest cycle for the /status chat command.
func FormatStatus(symbol string, at time.Time, bars, buys, sells int) string {
	if at.IsZero() {
		return fmt.Sprintf("📡 <b>SignalSentinel</b> | %s\n\nno cycle has completed yet", symbol)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📡 <b>SignalSentinel</b> | %s\n\n", symbol))
	b.WriteString(fmt.Sprintf("last cycle: %s\n", at.Format(TimeLayout)))
	b.WriteString(fmt.Sprintf("bars: %d\n", bars))
	b.WriteString(fmt.Sprintf("buy signals: %d | sell signals: %d\n", buys, sells))
	return b.String()
}
