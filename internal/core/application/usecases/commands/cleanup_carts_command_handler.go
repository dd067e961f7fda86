package commands

import (
	"context"
	"time"
)

// CleanupCartsCommandHandler removes carts that have been idle longer than
// the configured time-to-live. Orders are never touched: terminal orders are
// retained forever, only unsubmitted carts expire.
type CleanupCartsCommandHandler struct {
	uowFactory CartUoWFactory
	ttl        time.Duration
}

// NewCleanupCartsCommandHandler creates a handler for abandoned cart cleanup.
func NewCleanupCartsCommandHandler(uowFactory CartUoWFactory, ttl time.Duration) CleanupCartsCommandHandler {
	return CleanupCartsCommandHandler{
		uowFactory: uowFactory,
		ttl:        ttl,
	}
}

// Handle deletes all carts untouched for longer than the TTL and reports how
// many were removed.
func (h CleanupCartsCommandHandler) Handle(ctx context.Context, cmd CleanupCartsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-h.ttl)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.CartRepository().DeleteIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
