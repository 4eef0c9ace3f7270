package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrRemindStalePendingCommandIsNotConstructed is returned when a
// RemindStalePendingCommand was not created via
// NewRemindStalePendingCommand.
var ErrRemindStalePendingCommandIsNotConstructed = errors.New(
	"RemindStalePendingCommand must be created via NewRemindStalePendingCommand constructor",
)

// RemindStalePendingCommand represents a sweep for orders the restaurant
// has left pending past the given threshold.
type RemindStalePendingCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewRemindStalePendingCommand creates a command to alert ops about orders
// stuck in pending longer than threshold.
func NewRemindStalePendingCommand(threshold time.Duration) (RemindStalePendingCommand, error) {
	cmd := RemindStalePendingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setThreshold(threshold); err != nil {
		return RemindStalePendingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindStalePendingCommand) Validate() error {
	return c.guard.Validate(ErrRemindStalePendingCommandIsNotConstructed)
}

// Threshold returns how long an order may sit pending before it is
// considered stuck.
func (c RemindStalePendingCommand) Threshold() time.Duration {
	return c.threshold
}

func (c *RemindStalePendingCommand) setThreshold(threshold time.Duration) error {
	if threshold <= 0 {
		return errs.NewValueIsInvalidError("threshold")
	}
	c.threshold = threshold
	return nil
}
