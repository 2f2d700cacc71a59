package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

var callEmoji = map[model.Call]string{
	model.StrongBuy:  "🚀",
	model.Buy:        "📈",
	model.Hold:       "➖",
	model.Sell:       "📉",
	model.StrongSell: "🔻",
}

// FormatAlert formats one emitted asset result into a Telegram message.
func FormatAlert(res *model.AssetResult, name string) string {
	var b strings.Builder

	// Coin names come from the watch-list file and the message is HTML
	// parse mode; escape them.
	title := html.EscapeString(res.Symbol)
	if name != "" && !strings.EqualFold(name, res.Symbol) {
		title = fmt.Sprintf("%s (%s)", html.EscapeString(name), html.EscapeString(res.Symbol))
	}
	b.WriteString(fmt.Sprintf("%s <b>%s</b> | %s\n", callEmoji[res.Signal.Call], res.Signal.Call, title))
	b.WriteString(fmt.Sprintf("Price: %s\n", formatPrice(res.Price)))
	b.WriteString(fmt.Sprintf("Score: %+.3f (confidence: %s)\n", res.Signal.Score, res.Signal.Confidence))

	if res.PumpDump.Direction != model.DirNone {
		tag := "PUMP"
		if res.PumpDump.Direction == model.DirDown {
			tag = "DUMP"
		}
		b.WriteString(fmt.Sprintf("⚡ %s! %.2f%% move\n", tag, res.PumpDump.Magnitude))
	}
	if res.Signal.VolumeBoosted {
		b.WriteString("🔊 volume spike\n")
	}

	if len(res.Signal.Factors) > 0 {
		b.WriteString("\nFactors:\n")
		for _, f := range res.Signal.Factors {
			b.WriteString(fmt.Sprintf("  %s: %+.2f (×%.2f) = %+.3f\n", f.Name, f.Vote, f.Weight, f.Weighted))
		}
	}
	return b.String()
}

// FormatTop formats the highest-scoring stored states for the /top command.
func FormatTop(states []model.AlertState, limit int) string {
	sorted := make([]model.AlertState, len(states))
	copy(sorted, states)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LastScore > sorted[j].LastScore })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	var b strings.Builder
	b.WriteString("🏆 <b>Top signals</b>\n\n")
	if len(sorted) == 0 {
		b.WriteString("no assets scanned yet\n")
		return b.String()
	}
	for i, s := range sorted {
		b.WriteString(fmt.Sprintf("%2d. %-8s %-11s %+.3f\n", i+1, s.Symbol, s.LastCall, s.LastScore))
	}
	return b.String()
}

// formatPrice keeps enough precision for sub-cent assets.
func formatPrice(p float64) string {
	switch {
	case p >= 1:
		return fmt.Sprintf("$%.2f", p)
	case p >= 0.01:
		return fmt.Sprintf("$%.4f", p)
	default:
		return fmt.Sprintf("$%.8f", p)
	}
}
