package commands

import (
	"errors"
	"fmt"
	"strings"

	"jewelryorders/internal/pkg/errs"
	"jewelryorders/internal/pkg/guard"
)

var ErrStoreImageCommandIsNotConstructed = errors.New(
	"StoreImageCommand must be created via NewStoreImageCommand constructor",
)

// MaxImageBytes caps a single uploaded photo.
const MaxImageBytes = 10 << 20

// StoreImageCommand uploads an order photo. The returned id is what orders
// reference as their photo id.
type StoreImageCommand struct { //nolint:recvcheck //using for validation
	blob []byte
	mime string

	guard guard.ConstructorGuard
}

func NewStoreImageCommand(blob []byte, mime string) (StoreImageCommand, error) {
	mime = strings.ToLower(strings.TrimSpace(mime))

	var blobErr, mimeErr error
	switch {
	case len(blob) == 0:
		blobErr = errs.NewValueIsRequiredError("image")
	case len(blob) > MaxImageBytes:
		blobErr = errs.NewValueIsOutOfRangeError("image size", len(blob), 1, MaxImageBytes)
	}
	if !strings.HasPrefix(mime, "image/") {
		mimeErr = errs.NewValueIsInvalidErrorWithCause("mime", fmt.Errorf("%q is not an image type", mime))
	}
	if err := errors.Join(blobErr, mimeErr); err != nil {
		return StoreImageCommand{}, err
	}

	return StoreImageCommand{blob: blob, mime: mime, guard: guard.NewConstructorGuard()}, nil
}

func (c StoreImageCommand) Validate() error {
	return c.guard.Validate(ErrStoreImageCommandIsNotConstructed)
}

func (c StoreImageCommand) Blob() []byte { return c.blob }
func (c StoreImageCommand) Mime() string { return c.mime }
