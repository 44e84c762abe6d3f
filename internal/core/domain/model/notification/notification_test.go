package notification_test

import (
	"testing"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() notification.Params {
	return notification.Params{
		ID:          kernel.NewUUID(),
		EventType:   notification.OrderCreated,
		Timestamp:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Actor:       kernel.Actor{ID: "jb-1", Role: kernel.Coordinator},
		Entity:      notification.EntityRef{Type: notification.EntityOrder, ID: "o-1", DisplayNumber: "PO-1"},
		Audience:    []kernel.Role{kernel.Supplier},
		AddressedTo: "Sinar Mas",
		Title:       "New order",
	}
}

func TestNewNotification(t *testing.T) {
	t.Run("should start with empty read and removed markers", func(t *testing.T) {
		n, err := notification.NewNotification(validParams())

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Empty(t, n.ReadBy())
		assert.Empty(t, n.RemovedBy())
		assert.NotNil(t, n.ReadBy())
	})

	t.Run("should require a non-empty audience", func(t *testing.T) {
		p := validParams()
		p.Audience = nil

		_, err := notification.NewNotification(p)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "audience")
	})

	t.Run("should deduplicate and sort the audience", func(t *testing.T) {
		p := validParams()
		p.Audience = []kernel.Role{kernel.Sales, kernel.Coordinator, kernel.Sales}

		n, err := notification.NewNotification(p)

		require.NoError(t, err)
		assert.Equal(t, []kernel.Role{kernel.Coordinator, kernel.Sales}, n.Audience())
	})

	t.Run("should reject unknown event and entity", func(t *testing.T) {
		p := validParams()
		p.EventType = notification.UnknownEvent
		p.Entity = notification.EntityRef{Type: "invoice"}

		_, err := notification.NewNotification(p)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "event type")
		assert.Contains(t, err.Error(), "entity type")
		assert.Contains(t, err.Error(), "entity id")
	})
}

func TestNotification_MarkReadAndRemove(t *testing.T) {
	n, err := notification.NewNotification(validParams())
	require.NoError(t, err)

	assert.True(t, n.MarkRead("pabrik-1"))
	assert.False(t, n.MarkRead("pabrik-1"))
	assert.False(t, n.MarkRead(" "))
	assert.True(t, n.IsReadBy("pabrik-1"))
	assert.Equal(t, []string{"pabrik-1"}, n.ReadBy())

	assert.True(t, n.Remove("pabrik-1"))
	assert.False(t, n.Remove("pabrik-1"))
	assert.True(t, n.IsRemovedBy("pabrik-1"))
	assert.False(t, n.IsRemovedBy("pabrik-2"))
}

func TestNotification_VisibleTo(t *testing.T) {
	supplierActor := kernel.Actor{ID: "pabrik-1", Role: kernel.Supplier}

	t.Run("supplier sees orders addressed to its factory", func(t *testing.T) {
		n, err := notification.NewNotification(validParams())
		require.NoError(t, err)

		assert.True(t, n.VisibleTo(supplierActor, "sinar mas"))
		assert.False(t, n.VisibleTo(supplierActor, "Other Factory"))
	})

	t.Run("roles outside the audience see nothing", func(t *testing.T) {
		n, err := notification.NewNotification(validParams())
		require.NoError(t, err)

		assert.False(t, n.VisibleTo(kernel.Actor{ID: "jb-1", Role: kernel.Coordinator}, ""))
	})

	t.Run("removal hides only for the removing actor", func(t *testing.T) {
		p := validParams()
		p.AddressedTo = ""
		n, err := notification.NewNotification(p)
		require.NoError(t, err)

		n.Remove("pabrik-1")

		assert.False(t, n.VisibleTo(supplierActor, ""))
		assert.True(t, n.VisibleTo(kernel.Actor{ID: "pabrik-2", Role: kernel.Supplier}, ""))
	})

	t.Run("request events reach only their originator among sales", func(t *testing.T) {
		p := validParams()
		p.EventType = notification.RequestRejected
		p.Entity = notification.EntityRef{Type: notification.EntityRequest, ID: "r-1"}
		p.Audience = []kernel.Role{kernel.Sales}
		p.AddressedTo = ""
		p.Originator = "sales-7"
		n, err := notification.NewNotification(p)
		require.NoError(t, err)

		assert.True(t, n.VisibleTo(kernel.Actor{ID: "sales-7", Role: kernel.Sales}, ""))
		assert.False(t, n.VisibleTo(kernel.Actor{ID: "sales-8", Role: kernel.Sales}, ""))
	})

	t.Run("explicit recipients narrow the audience", func(t *testing.T) {
		p := validParams()
		p.Recipients = []string{"pabrik-2"}
		n, err := notification.NewNotification(p)
		require.NoError(t, err)

		assert.False(t, n.VisibleTo(supplierActor, "Sinar Mas"))
		assert.True(t, n.VisibleTo(kernel.Actor{ID: "pabrik-2", Role: kernel.Supplier}, "Sinar Mas"))
	})
}

func TestDefaultAudience(t *testing.T) {
	tests := []struct {
		event  notification.EventType
		status order.Status
		want   []kernel.Role
	}{
		{notification.RequestCreated, order.Unknown, []kernel.Role{kernel.Stockist}},
		{notification.RequestViewed, order.Unknown, []kernel.Role{kernel.Sales}},
		{notification.RequestApproved, order.Unknown, []kernel.Role{kernel.Coordinator}},
		{notification.RequestConverted, order.Unknown, []kernel.Role{kernel.Sales, kernel.Stockist}},
		{notification.OrderCreated, order.Unknown, []kernel.Role{kernel.Supplier}},
		{notification.OrderStatusChanged, order.StockReady, []kernel.Role{kernel.Coordinator, kernel.Sales}},
		{notification.OrderStatusChanged, order.Completed, []kernel.Role{kernel.Coordinator, kernel.Sales}},
		{notification.OrderStatusChanged, order.WaitingForSupplier, []kernel.Role{kernel.Supplier}},
		{notification.OrderStatusChanged, order.Cancelled, []kernel.Role{kernel.Supplier}},
		{notification.OrderStatusChanged, order.InProduction, []kernel.Role{kernel.Coordinator}},
		{notification.OrderRevised, order.Unknown, []kernel.Role{kernel.Coordinator, kernel.Supplier}},
		{notification.OrderArrivalRecorded, order.Unknown, []kernel.Role{kernel.Sales, kernel.Stockist}},
		{notification.OrderClosed, order.Unknown, []kernel.Role{kernel.Coordinator, kernel.Sales}},
		{notification.DeliveryOverdue, order.Unknown, []kernel.Role{kernel.Coordinator, kernel.Supplier}},
	}

	for _, tt := range tests {
		t.Run(tt.event.String()+"/"+tt.status.String(), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, notification.DefaultAudience(tt.event, tt.status))
		})
	}

	assert.Empty(t, notification.DefaultAudience(notification.UnknownEvent, order.Unknown))
}

func TestEventType_Text(t *testing.T) {
	e, err := notification.ParseEventType("ORDER_REVISED")
	require.NoError(t, err)
	assert.Equal(t, notification.OrderRevised, e)
	assert.Equal(t, notification.EntityOrder, e.Entity())
	assert.Equal(t, notification.EntityRequest, notification.RequestViewed.Entity())

	text, err := notification.DeliveryDueSoon.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "delivery_due_soon", string(text))
}
