package commands

import (
	"context"

	"jewelryorders/internal/core/ports"
)

type PurgeImagesCommandHandler struct {
	images ports.ImageStore
}

func NewPurgeImagesCommandHandler(images ports.ImageStore) PurgeImagesCommandHandler {
	return PurgeImagesCommandHandler{images: images}
}

// Handle returns the number of purged images.
func (h *PurgeImagesCommandHandler) Handle(ctx context.Context, cmd PurgeImagesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.images.PurgeOlderThan(ctx, cmd.RetentionDays())
}
