package commands

import (
	"errors"

	"jewelryorders/internal/pkg/errs"
	"jewelryorders/internal/pkg/guard"
)

var ErrPurgeImagesCommandIsNotConstructed = errors.New(
	"PurgeImagesCommand must be created via NewPurgeImagesCommand constructor",
)

// PurgeImagesCommand deletes stored photos older than the retention period.
type PurgeImagesCommand struct { //nolint:recvcheck //using for validation
	retentionDays int

	guard guard.ConstructorGuard
}

func NewPurgeImagesCommand(retentionDays int) (PurgeImagesCommand, error) {
	if retentionDays <= 0 {
		return PurgeImagesCommand{}, errs.NewValueIsOutOfRangeError("retentionDays", retentionDays, 1, "unbounded")
	}
	return PurgeImagesCommand{retentionDays: retentionDays, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeImagesCommand) Validate() error {
	return c.guard.Validate(ErrPurgeImagesCommandIsNotConstructed)
}

func (c PurgeImagesCommand) RetentionDays() int {
	return c.retentionDays
}
