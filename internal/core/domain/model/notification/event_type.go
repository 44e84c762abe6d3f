package notification

import (
	"fmt"
	"strings"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"
)

// EventType is the closed catalog of events that produce notifications.
type EventType int

const (
	UnknownEvent EventType = iota
	RequestCreated
	RequestUpdated
	RequestViewed
	RequestApproved
	RequestRejected
	RequestConverted
	OrderCreated
	OrderUpdated
	OrderStatusChanged
	OrderRevised
	OrderViewed
	OrderArrivalRecorded
	OrderClosed
	DeliveryDueSoon
	DeliveryOverdue
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		RequestCreated:       "request_created",
		RequestUpdated:       "request_updated",
		RequestViewed:        "request_viewed",
		RequestApproved:      "request_approved",
		RequestRejected:      "request_rejected",
		RequestConverted:     "request_converted",
		OrderCreated:         "order_created",
		OrderUpdated:         "order_updated",
		OrderStatusChanged:   "order_status_changed",
		OrderRevised:         "order_revised",
		OrderViewed:          "order_viewed",
		OrderArrivalRecorded: "order_arrival_recorded",
		OrderClosed:          "order_closed",
		DeliveryDueSoon:      "delivery_due_soon",
		DeliveryOverdue:      "delivery_overdue",
	}
}

func ParseEventType(s string) (EventType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for e, name := range getEventTypeStrings() {
		if name == normalized {
			return e, nil
		}
	}
	return UnknownEvent, errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a known event", s))
}

func (e EventType) Validate() error {
	if _, ok := getEventTypeStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%d is not a known event", e))
	}
	return nil
}

func (e EventType) String() string {
	if s, ok := getEventTypeStrings()[e]; ok {
		return s
	}
	return "unknown"
}

func (e EventType) MarshalText() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return []byte(e.String()), nil
}

func (e *EventType) UnmarshalText(text []byte) error {
	parsed, err := ParseEventType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Entity reports which kind of entity the event is about.
func (e EventType) Entity() EntityType {
	switch e {
	case RequestCreated, RequestUpdated, RequestViewed, RequestApproved, RequestRejected, RequestConverted:
		return EntityRequest
	case UnknownEvent:
		return ""
	}
	return EntityOrder
}

// DefaultAudience returns the roles an event is shown to. newStatus is only
// consulted for OrderStatusChanged.
func DefaultAudience(e EventType, newStatus order.Status) []kernel.Role {
	switch e {
	case RequestCreated, RequestUpdated:
		return []kernel.Role{kernel.Stockist}
	case RequestViewed, RequestRejected:
		return []kernel.Role{kernel.Sales}
	case RequestApproved:
		return []kernel.Role{kernel.Coordinator}
	case RequestConverted:
		return []kernel.Role{kernel.Sales, kernel.Stockist}
	case OrderCreated, OrderUpdated:
		return []kernel.Role{kernel.Supplier}
	case OrderStatusChanged:
		return statusChangeAudience(newStatus)
	case OrderRevised, DeliveryDueSoon, DeliveryOverdue:
		return []kernel.Role{kernel.Coordinator, kernel.Supplier}
	case OrderViewed:
		return []kernel.Role{kernel.Coordinator}
	case OrderArrivalRecorded:
		return []kernel.Role{kernel.Sales, kernel.Stockist}
	case OrderClosed:
		return []kernel.Role{kernel.Coordinator, kernel.Sales}
	}
	return nil
}

func statusChangeAudience(s order.Status) []kernel.Role {
	switch s {
	case order.StockReady, order.Completed:
		return []kernel.Role{kernel.Coordinator, kernel.Sales}
	case order.WaitingForSupplier, order.Cancelled:
		return []kernel.Role{kernel.Supplier}
	}
	return []kernel.Role{kernel.Coordinator}
}
