package ledger

import (
	"context"
	"log"
	"sync"

	"github.com/borsazengini/trading-terminal/internal/market"
	"github.com/borsazengini/trading-terminal/internal/models"
	"github.com/borsazengini/trading-terminal/internal/store"
)

// TradeRequest is one buy or sell order for an account.
type TradeRequest struct {
	AccountID string
	Symbol    string
	Shares    int
	Type      models.TradeType
}

// TradeResult is the outcome of a processed trade.
type TradeResult struct {
	Transaction models.Transaction
	Balance     float64
	NetWorth    float64
	Err         error
}

type queuedTrade struct {
	ctx      context.Context
	req      TradeRequest
	resultCh chan TradeResult
}

// Processor runs trades through a worker pool with per-account locking:
// different accounts trade in parallel, the same account is strictly
// serialized. Each trade loads the account, prices the order against the
// live market, applies the ledger and persists the account wholesale.
type Processor struct {
	workers int
	queue   chan queuedTrade
	stopCh  chan struct{}
	wg      sync.WaitGroup
	locks   *accountLocks

	store  store.Store
	market *market.Market
}

// NewProcessor creates a trade processor backed by the given store and
// market.
func NewProcessor(workers int, st store.Store, mkt *market.Market) *Processor {
	return &Processor{
		workers: workers,
		queue:   make(chan queuedTrade, 100),
		stopCh:  make(chan struct{}),
		locks:   newAccountLocks(),
		store:   st,
		market:  mkt,
	}
}

// Start launches the worker pool.
func (p *Processor) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("Started %d trade workers", p.workers)
}

// Stop gracefully stops all workers.
func (p *Processor) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	log.Println("Trade processor stopped")
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			return
		case qt := <-p.queue:
			qt.resultCh <- p.process(qt.ctx, qt.req)
		}
	}
}

func (p *Processor) process(ctx context.Context, req TradeRequest) TradeResult {
	p.locks.Lock(req.AccountID)
	defer p.locks.Unlock(req.AccountID)

	acc, err := p.store.FindByID(ctx, req.AccountID)
	if err != nil {
		return TradeResult{Err: err}
	}

	stock, ok := p.market.Get(req.Symbol)
	if !ok {
		return TradeResult{Err: models.ErrUnknownSymbol}
	}

	var tx models.Transaction
	if req.Type == models.TradeTypeSell {
		tx, err = Sell(acc, stock, req.Shares)
	} else {
		tx, err = Buy(acc, stock, req.Shares)
	}
	if err != nil {
		return TradeResult{Err: err}
	}

	// Mirror the derived net worth into the persisted record so the
	// leaderboard can rank without repricing every portfolio.
	acc.NetWorth = NetWorth(acc, p.market.Prices())

	if err := p.store.UpsertAccount(ctx, acc); err != nil {
		return TradeResult{Err: err}
	}

	return TradeResult{
		Transaction: tx,
		Balance:     acc.Balance,
		NetWorth:    acc.NetWorth,
	}
}

// Submit queues a trade and waits for its result.
func (p *Processor) Submit(ctx context.Context, req TradeRequest) TradeResult {
	resultCh := make(chan TradeResult)
	p.queue <- queuedTrade{ctx: ctx, req: req, resultCh: resultCh}
	return <-resultCh
}
