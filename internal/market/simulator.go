package market

import (
	"math"
	"time"

	"github.com/borsazengini/trading-terminal/internal/models"
)

const (
	// TickWindow quantizes wall-clock time. Every observer that computes a
	// price inside the same window derives the identical result, which is
	// the entire synchronization mechanism between clients.
	TickWindow = 3 * time.Second

	// HistorySize bounds each stock's price history window.
	HistorySize = 20

	// Prices are floored here, never zero or negative.
	priceFloor = 0.01
)

// Tick returns the current quantized time window.
func Tick() int64 {
	return time.Now().UnixMilli() / TickWindow.Milliseconds()
}

// NextPrice deterministically derives the next price of a symbol for a given
// tick. The seed and sine hash must stay bit-for-bit as written: other
// observers of the shared market compute the same formula, and agreement
// depends on reproducing it exactly. It is neither cryptographic nor
// statistically uniform, and does not need to be.
func NextPrice(symbol string, category models.Category, prev float64, tick int64) (price, change, changePercent float64) {
	seed := float64(tick)
	for _, ch := range symbol {
		seed += float64(ch)
	}
	x := math.Sin(seed) * 10000
	frac := x - math.Floor(x)
	delta := (frac - 0.5) * category.Volatility()

	price = math.Max(priceFloor, prev*(1+delta))
	change = price - prev
	// Percent is computed against the new price, not the previous one.
	// That is what every other observer of this formula does; "fixing" it
	// would desynchronize the shared market.
	changePercent = change / price * 100
	return price, change, changePercent
}
