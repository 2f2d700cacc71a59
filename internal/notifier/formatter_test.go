package notifier

import (
	"strings"
	"testing"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

func TestFormatAlert(t *testing.T) {
	res := &model.AssetResult{
		Symbol: "BTC",
		Price:  60123.45,
		PumpDump: model.PumpDumpFlag{
			Direction: model.DirUp,
			Magnitude: 3.2,
		},
		Signal: model.Signal{
			Call:       model.StrongBuy,
			Score:      0.71,
			Confidence: model.ConfidenceFull,
			Factors: []model.FactorScore{
				{Name: "rsi14", Vote: -1, Weight: 1, Weighted: -1},
				{Name: "ema_cross", Vote: 1, Weight: 1.5, Weighted: 1.5},
			},
			VolumeBoosted: true,
		},
	}
	msg := FormatAlert(res, "Bitcoin")

	for _, want := range []string{
		"STRONG_BUY", "Bitcoin (BTC)", "$60123.45", "+0.710", "PUMP", "3.20%",
		"volume spike", "rsi14", "ema_cross",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatAlert_SubCentPrice(t *testing.T) {
	res := &model.AssetResult{
		Symbol: "SHIB",
		Price:  0.00001234,
		Signal: model.Signal{Call: model.Sell, Score: -0.3, Confidence: model.ConfidenceLow},
	}
	msg := FormatAlert(res, "")
	if !strings.Contains(msg, "$0.00001234") {
		t.Errorf("sub-cent price lost precision:\n%s", msg)
	}
	if strings.Contains(msg, "PUMP") || strings.Contains(msg, "DUMP") {
		t.Error("quiet flag must not print a pump/dump line")
	}
}

func TestFormatAlert_EscapesCoinName(t *testing.T) {
	res := &model.AssetResult{
		Symbol: "XYZ",
		Price:  1.5,
		Signal: model.Signal{Call: model.Buy, Score: 0.3, Confidence: model.ConfidenceLow},
	}
	msg := FormatAlert(res, "Spark <Beta> & Co")
	if strings.Contains(msg, "<Beta>") {
		t.Errorf("coin name must be HTML-escaped:\n%s", msg)
	}
	if !strings.Contains(msg, "Spark &lt;Beta&gt; &amp; Co") {
		t.Errorf("escaped name missing:\n%s", msg)
	}
}

func TestFormatTop(t *testing.T) {
	states := []model.AlertState{
		{Symbol: "ETH", LastCall: model.Buy, LastScore: 0.4},
		{Symbol: "BTC", LastCall: model.StrongBuy, LastScore: 0.7},
		{Symbol: "ADA", LastCall: model.Sell, LastScore: -0.3},
	}
	msg := FormatTop(states, 2)
	if !strings.Contains(msg, "BTC") || !strings.Contains(msg, "ETH") {
		t.Errorf("top entries missing:\n%s", msg)
	}
	if strings.Contains(msg, "ADA") {
		t.Errorf("limit 2 must cut the third entry:\n%s", msg)
	}
	if strings.Index(msg, "BTC") > strings.Index(msg, "ETH") {
		t.Errorf("entries must be sorted by score desc:\n%s", msg)
	}
}

func TestFormatTop_Empty(t *testing.T) {
	msg := FormatTop(nil, 10)
	if !strings.Contains(msg, "no assets scanned yet") {
		t.Errorf("empty store placeholder missing:\n%s", msg)
	}
}
