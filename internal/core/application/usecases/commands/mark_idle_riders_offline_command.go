package commands

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrMarkIdleRidersOfflineCommandIsNotConstructed = errors.New(
	"MarkIdleRidersOfflineCommand must be created via NewMarkIdleRidersOfflineCommand constructor",
)

// MarkIdleRidersOfflineCommand takes riders out of the pool once they have
// been silent for longer than timeout while holding no orders.
type MarkIdleRidersOfflineCommand struct {
	timeout time.Duration

	guard guard.ConstructorGuard
}

func NewMarkIdleRidersOfflineCommand(timeout time.Duration) (MarkIdleRidersOfflineCommand, error) {
	if timeout <= 0 {
		return MarkIdleRidersOfflineCommand{}, errs.NewValueIsInvalidError("timeout")
	}

	return MarkIdleRidersOfflineCommand{
		timeout: timeout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkIdleRidersOfflineCommand) Validate() error {
	return c.guard.Validate(ErrMarkIdleRidersOfflineCommandIsNotConstructed)
}

func (c MarkIdleRidersOfflineCommand) Timeout() time.Duration { return c.timeout }
