package queries

import (
	"context"
	"errors"
	"strings"

	"jewelryorders/internal/core/ports"
	"jewelryorders/internal/pkg/errs"
	"jewelryorders/internal/pkg/guard"
)

var ErrGetImageQueryIsNotConstructed = errors.New(
	"GetImageQuery must be created via NewGetImageQuery constructor",
)

type GetImageQuery struct {
	id string

	guard guard.ConstructorGuard
}

func NewGetImageQuery(id string) (GetImageQuery, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return GetImageQuery{}, errs.NewValueIsRequiredError("image id")
	}
	return GetImageQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetImageQuery) Validate() error {
	return q.guard.Validate(ErrGetImageQueryIsNotConstructed)
}

func (q GetImageQuery) ID() string {
	return q.id
}

type GetImageQueryHandler struct {
	images ports.ImageStore
}

func NewGetImageQueryHandler(images ports.ImageStore) GetImageQueryHandler {
	return GetImageQueryHandler{images: images}
}

// Handle returns the stored photo or *errs.ObjectNotFoundError.
func (h GetImageQueryHandler) Handle(ctx context.Context, query GetImageQuery) ([]byte, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	blob, ok, err := h.images.Get(ctx, query.ID())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("image", query.ID())
	}
	return blob, nil
}
