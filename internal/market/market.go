package market

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/borsazengini/trading-terminal/internal/models"
)

// Market owns the live simulated state of every tracked instrument and
// advances all of them on a fixed tick. Reads hand out copies, so callers
// can never mutate shared state.
type Market struct {
	mu     sync.RWMutex
	stocks []*models.Stock
	index  map[string]*models.Stock

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a market tracking the given instruments. Each history window
// is seeded with flat samples at the opening price so charts start full.
func New(stocks []models.Stock) *Market {
	m := &Market{
		stocks:   make([]*models.Stock, 0, len(stocks)),
		index:    make(map[string]*models.Stock, len(stocks)),
		interval: TickWindow,
		stopCh:   make(chan struct{}),
	}
	for i := range stocks {
		s := stocks[i]
		s.History = make([]models.PricePoint, 0, HistorySize)
		for j := 0; j < HistorySize; j++ {
			s.History = append(s.History, models.PricePoint{
				Time:  fmt.Sprintf("%d:00", j),
				Price: s.Price,
			})
		}
		m.stocks = append(m.stocks, &s)
		m.index[s.Symbol] = &s
	}
	return m
}

// NewDefault creates a market tracking the built-in instrument universe.
func NewDefault() *Market {
	return New(defaultUniverse())
}

// Start launches the ticker goroutine. It keeps repricing every instrument
// once per tick window until Stop is called.
func (m *Market) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.stopCh:
				return
			case now := <-ticker.C:
				m.Advance(now.UnixMilli()/m.interval.Milliseconds(), now.Format("15:04:05"))
			}
		}
	}()
	log.Printf("Market ticker started (%d instruments, every %s)", len(m.stocks), m.interval)
}

// Stop cancels the ticker goroutine and waits for it to exit.
func (m *Market) Stop() {
	close(m.stopCh)
	m.wg.Wait()
	log.Println("Market ticker stopped")
}

// Advance reprices every instrument for the given tick and appends one
// sample to each history window, evicting the oldest at capacity.
func (m *Market) Advance(tick int64, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.stocks {
		price, change, changePercent := NextPrice(s.Symbol, s.Category, s.Price, tick)
		s.Price = price
		s.Change = change
		s.ChangePercent = changePercent

		s.History = append(s.History, models.PricePoint{Time: label, Price: price})
		if len(s.History) > HistorySize {
			s.History = s.History[1:]
		}
	}
}

// Snapshot returns a copy of every tracked stock in universe order.
func (m *Market) Snapshot() []models.Stock {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Stock, 0, len(m.stocks))
	for _, s := range m.stocks {
		out = append(out, copyStock(s))
	}
	return out
}

// Get returns a copy of one stock by symbol.
func (m *Market) Get(symbol string) (models.Stock, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.index[symbol]
	if !ok {
		return models.Stock{}, false
	}
	return copyStock(s), true
}

// Prices returns the current price of every tracked symbol.
func (m *Market) Prices() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prices := make(map[string]float64, len(m.stocks))
	for _, s := range m.stocks {
		prices[s.Symbol] = s.Price
	}
	return prices
}

func copyStock(s *models.Stock) models.Stock {
	c := *s
	c.History = make([]models.PricePoint, len(s.History))
	copy(c.History, s.History)
	return c
}
