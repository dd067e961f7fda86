package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrCleanupCartsCommandIsNotConstructed = errors.New(
	"CleanupCartsCommand must be created via NewCleanupCartsCommand constructor",
)

// CleanupCartsCommand represents a request to remove abandoned carts. This is
// a parameterless command issued by the scheduled cleanup job; the idle
// cutoff lives in the handler's configuration.
type CleanupCartsCommand struct {
	guard guard.ConstructorGuard
}

// NewCleanupCartsCommand creates a cart cleanup command.
func NewCleanupCartsCommand() CleanupCartsCommand {
	return CleanupCartsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c CleanupCartsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupCartsCommandIsNotConstructed)
}
