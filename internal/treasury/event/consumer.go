package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
)

type Handler interface {
	Handle(ctx context.Context, ev entity.LedgerEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// Consumer drains a Bus with a fixed number of workers. Each event id is
// handled at most once; a failing handler is retried with exponential backoff.
type Consumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *Consumer {
	c := &Consumer{
		bus:         bus,
		handler:     handler,
		workers:     cfg.Workers,
		maxRetries:  max(cfg.MaxRetries, 0),
		baseBackoff: cfg.BaseBackoff,
	}
	if c.workers < 1 {
		c.workers = 2
	}
	if c.baseBackoff <= 0 {
		c.baseBackoff = 50 * time.Millisecond
	}

	return c
}

func (c *Consumer) Start() {
	for range c.workers {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for the workers to drain it or for ctx to end.
func (c *Consumer) Stop(ctx context.Context) error {
	c.bus.Close()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Consumer) worker() {
	defer c.wg.Done()

	for ev := range c.bus.Subscribe() {
		c.process(ev)
	}
}

func (c *Consumer) process(ev entity.LedgerEvent) {
	if c.handler == nil {
		return
	}

	if ev.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(ev.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate ledger event", "event_id", ev.EventID, "tx_id", ev.Transaction.ID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; ; attempt++ {
		err := c.handler.Handle(context.Background(), ev)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to handle ledger event after retries",
				"event_id", ev.EventID,
				"kind", ev.Kind,
				"tx_id", ev.Transaction.ID,
				"attempts", attempt+1,
				"error", err,
			)
			return
		}

		time.Sleep(backoff)
		backoff *= 2
	}
}

var errMissingEventID = errors.New("missing event id")

// AuditLog writes one structured log record per ledger event.
type AuditLog struct {
	Logger *slog.Logger
}

func (a AuditLog) Handle(ctx context.Context, ev entity.LedgerEvent) error {
	if ev.EventID == "" {
		return errMissingEventID
	}

	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tx := ev.Transaction
	attrs := []any{
		"event_id", ev.EventID,
		"kind", ev.Kind,
		"tx_id", tx.ID,
		"from_account_id", tx.FromAccountID,
		"to_account_id", tx.ToAccountID,
		"amount", tx.Amount.String(),
		"currency", tx.Currency,
	}
	if tx.ConvertedAmount.Valid {
		attrs = append(attrs, "converted_amount", tx.ConvertedAmount.Decimal.String(), "converted_currency", tx.ConvertedCurrency)
	}
	if tx.ReversalOf != "" {
		attrs = append(attrs, "reversal_of", tx.ReversalOf)
	}

	logger.InfoContext(ctx, "ledger event", attrs...)
	return nil
}
