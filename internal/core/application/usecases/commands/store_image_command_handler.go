package commands

import (
	"context"

	"jewelryorders/internal/core/ports"
)

type StoreImageCommandHandler struct {
	images ports.ImageStore
}

func NewStoreImageCommandHandler(images ports.ImageStore) StoreImageCommandHandler {
	return StoreImageCommandHandler{images: images}
}

// Handle stores the photo and returns its id.
func (h *StoreImageCommandHandler) Handle(ctx context.Context, cmd StoreImageCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	return h.images.Put(ctx, cmd.Blob(), cmd.Mime())
}
