package commands_test

import (
	"bytes"
	"testing"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewStoreImageCommand(t *testing.T) {
	tests := []struct {
		name    string
		blob    []byte
		mime    string
		wantErr error
	}{
		{name: "empty blob", blob: nil, mime: "image/png", wantErr: errs.ErrValueIsRequired},
		{name: "too large", blob: bytes.Repeat([]byte{1}, 10<<20+1), mime: "image/png", wantErr: errs.ErrValueIsOutOfRange},
		{name: "not an image", blob: []byte{1}, mime: "application/pdf", wantErr: errs.ErrValueIsInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewStoreImageCommand(tt.blob, tt.mime)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("normalizes the mime type", func(t *testing.T) {
		cmd, err := commands.NewStoreImageCommand([]byte{1, 2}, " Image/JPEG ")

		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", cmd.Mime())
	})
}

func TestStoreImageCommandHandler_Handle(t *testing.T) {
	cmd, err := commands.NewStoreImageCommand([]byte{1, 2, 3}, "image/png")
	require.NoError(t, err)

	images := new(MockImageStore)
	images.On("Put", mock.Anything, []byte{1, 2, 3}, "image/png").Return("img-42", nil).Once()

	h := commands.NewStoreImageCommandHandler(images)
	id, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "img-42", id)
	images.AssertExpectations(t)
}

func TestPurgeImagesCommandHandler_Handle(t *testing.T) {
	_, err := commands.NewPurgeImagesCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewPurgeImagesCommand(30)
	require.NoError(t, err)

	images := new(MockImageStore)
	images.On("PurgeOlderThan", mock.Anything, 30).Return(4, nil).Once()

	h := commands.NewPurgeImagesCommandHandler(images)
	purged, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 4, purged)
	images.AssertExpectations(t)
}
