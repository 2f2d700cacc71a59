// Package series holds the rolling per-asset candle window that all
// candle-based indicators are computed over.
package series

import (
	"errors"
	"fmt"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

var (
	// ErrOutOfOrder is returned when an appended candle's open time is not
	// strictly greater than the latest candle already in the buffer.
	ErrOutOfOrder = errors.New("out-of-order candle")
	// ErrInsufficientData is returned when fewer candles are present than a
	// requested lookback.
	ErrInsufficientData = errors.New("insufficient data")
)

// DefaultMaxWindow covers one day of 1-minute candles.
const DefaultMaxWindow = 1440

// Buffer owns the ordered candle sequence for one asset. Candles are
// immutable once appended; the oldest are evicted FIFO past the max window.
type Buffer struct {
	symbol  string
	max     int
	candles []model.Candle
}

// NewBuffer creates a buffer for one asset. maxWindow <= 0 selects
// DefaultMaxWindow.
func NewBuffer(symbol string, maxWindow int) *Buffer {
	if maxWindow <= 0 {
		maxWindow = DefaultMaxWindow
	}
	return &Buffer{symbol: symbol, max: maxWindow}
}

// Symbol returns the asset this buffer belongs to.
func (b *Buffer) Symbol() string { return b.symbol }

// Len returns the number of candles currently held.
func (b *Buffer) Len() int { return len(b.candles) }

// Append adds a candle. The open time must be strictly greater than the
// current latest; otherwise the buffer is left untouched.
func (b *Buffer) Append(c model.Candle) error {
	if n := len(b.candles); n > 0 && !c.OpenTime.After(b.candles[n-1].OpenTime) {
		return fmt.Errorf("%w: %s at %s not after %s",
			ErrOutOfOrder, b.symbol, c.OpenTime, b.candles[n-1].OpenTime)
	}
	b.candles = append(b.candles, c)
	if over := len(b.candles) - b.max; over > 0 {
		b.candles = append(b.candles[:0], b.candles[over:]...)
	}
	return nil
}

// AppendAll appends candles in order, silently skipping any that are not
// newer than the current latest. This is the per-tick refresh path: upstream
// feeds re-deliver overlapping windows and only the new tail is taken.
func (b *Buffer) AppendAll(candles []model.Candle) int {
	added := 0
	for _, c := range candles {
		if err := b.Append(c); err == nil {
			added++
		}
	}
	return added
}

// Window returns the most recent lookback candles.
func (b *Buffer) Window(lookback int) ([]model.Candle, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("lookback must be positive, got %d", lookback)
	}
	if len(b.candles) < lookback {
		return nil, fmt.Errorf("%w: have %d candles, need %d", ErrInsufficientData, len(b.candles), lookback)
	}
	return b.candles[len(b.candles)-lookback:], nil
}

// Closes returns the most recent lookback close prices, oldest first.
func (b *Buffer) Closes(lookback int) ([]float64, error) {
	return b.field(lookback, func(c model.Candle) float64 { return c.Close })
}

// Highs returns the most recent lookback high prices, oldest first.
func (b *Buffer) Highs(lookback int) ([]float64, error) {
	return b.field(lookback, func(c model.Candle) float64 { return c.High })
}

// Lows returns the most recent lookback low prices, oldest first.
func (b *Buffer) Lows(lookback int) ([]float64, error) {
	return b.field(lookback, func(c model.Candle) float64 { return c.Low })
}

// Volumes returns the most recent lookback volumes, oldest first.
func (b *Buffer) Volumes(lookback int) ([]float64, error) {
	return b.field(lookback, func(c model.Candle) float64 { return c.Volume })
}

func (b *Buffer) field(lookback int, get func(model.Candle) float64) ([]float64, error) {
	w, err := b.Window(lookback)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(w))
	for i, c := range w {
		out[i] = get(c)
	}
	return out, nil
}

// Last returns the newest candle, or false when the buffer is empty.
func (b *Buffer) Last() (model.Candle, bool) {
	if len(b.candles) == 0 {
		return model.Candle{}, false
	}
	return b.candles[len(b.candles)-1], true
}
