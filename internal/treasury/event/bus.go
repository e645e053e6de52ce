package event

import (
	"context"
	"errors"
	"sync"

	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
)

var ErrBusClosed = errors.New("ledger event bus is closed")

// Bus is a buffered in-process queue of committed ledger events.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.LedgerEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{ch: make(chan entity.LedgerEvent, buffer)}
}

// Publish enqueues ev, blocking while the buffer is full until ctx is done.
func (b *Bus) Publish(ctx context.Context, ev entity.LedgerEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.LedgerEvent {
	return b.ch
}

// Close stops accepting events. Events already buffered are still delivered.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
