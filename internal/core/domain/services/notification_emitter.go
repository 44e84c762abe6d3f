package services

import (
	"fmt"
	"strconv"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/model/request"
	"jewelryorders/internal/pkg/errs"
)

// Event describes something that happened to an order or request. Order
// events need Order, request events need Request; request_converted may carry
// both.
type Event struct {
	Type     notification.EventType
	Actor    kernel.Actor
	Order    *order.Order
	Request  *request.Request
	Revision *order.Revision

	// PreviousStatus is reported in status change metadata when set.
	PreviousStatus order.Status

	// At overrides the emitter clock.
	At time.Time

	// Audience overrides the default audience of the event type.
	Audience   []kernel.Role
	Recipients []string
	Metadata   map[string]string
}

// NotificationEmitter derives audience-targeted notifications from events.
//
// The notification id is a name-based UUID over entity id, event type and
// timestamp, so the same event at the same instant always maps to the same id.
type NotificationEmitter struct {
	clock kernel.Clock
}

func NewNotificationEmitter(clock kernel.Clock) NotificationEmitter {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return NotificationEmitter{clock: clock}
}

// Build creates the notification for ev. It does not store or publish it.
func (e NotificationEmitter) Build(ev Event) (*notification.Notification, error) {
	if err := ev.Type.Validate(); err != nil {
		return nil, err
	}

	at := ev.At
	if at.IsZero() {
		at = e.clock()
	}

	params := notification.Params{
		EventType:  ev.Type,
		Timestamp:  at,
		Actor:      ev.Actor,
		Recipients: ev.Recipients,
		Metadata:   make(map[string]string, len(ev.Metadata)+3),
	}
	for k, v := range ev.Metadata {
		params.Metadata[k] = v
	}

	var err error
	switch ev.Type.Entity() {
	case notification.EntityOrder:
		err = e.fillOrder(&params, ev)
	case notification.EntityRequest:
		err = e.fillRequest(&params, ev)
	}
	if err != nil {
		return nil, err
	}

	params.Audience = ev.Audience
	if len(params.Audience) == 0 {
		var status order.Status
		if ev.Order != nil {
			status = ev.Order.Status()
		}
		params.Audience = notification.DefaultAudience(ev.Type, status)
	}
	params.ID = kernel.NewNameUUID(fmt.Sprintf("%s|%s|%d", params.Entity.ID, ev.Type, at.UnixNano()))

	return notification.NewNotification(params)
}

func (e NotificationEmitter) fillOrder(p *notification.Params, ev Event) error {
	o := ev.Order
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}
	if err := o.Validate(); err != nil {
		return err
	}

	p.Entity = notification.EntityRef{Type: notification.EntityOrder, ID: o.ID().String(), DisplayNumber: o.PONumber()}
	p.AddressedTo = o.Factory().Name
	p.Metadata["status"] = o.Status().String()

	po := o.PONumber()
	switch ev.Type {
	case notification.OrderCreated:
		p.Title = "New order"
		p.Message = fmt.Sprintf("Order %s for %s was created", po, o.Factory().Name)
	case notification.OrderUpdated:
		p.Title = "Order updated"
		p.Message = fmt.Sprintf("Order %s was updated", po)
	case notification.OrderStatusChanged:
		p.Title = "Order status changed"
		p.Message = fmt.Sprintf("Order %s is now %s", po, o.Status())
		if ev.PreviousStatus != order.Unknown {
			p.Metadata["previousStatus"] = ev.PreviousStatus.String()
			p.Message = fmt.Sprintf("Order %s moved from %s to %s", po, ev.PreviousStatus, o.Status())
		}
	case notification.OrderRevised:
		if ev.Revision == nil {
			return errs.NewValueIsRequiredError("revision")
		}
		p.Title = "Order revised"
		p.Message = fmt.Sprintf("Order %s revision %d by %s", po, ev.Revision.Number, ev.Revision.Actor.Role)
		p.Changes = fieldChanges(*ev.Revision)
		p.Metadata["revision"] = strconv.Itoa(ev.Revision.Number)
	case notification.OrderViewed:
		p.Title = "Order viewed"
		p.Message = fmt.Sprintf("Order %s was opened by %s", po, o.Factory().Name)
	case notification.OrderArrivalRecorded:
		p.Title = "Goods arrived"
		p.Message = fmt.Sprintf("Goods for order %s arrived", po)
	case notification.OrderClosed:
		p.Title = "Order closed"
		p.Message = fmt.Sprintf("Order %s is %s", po, o.Status())
	case notification.DeliveryDueSoon:
		p.Title = "Delivery due soon"
		p.Message = fmt.Sprintf("Order %s is due on %s", po, o.DeliveryDate().Format(time.DateOnly))
	case notification.DeliveryOverdue:
		p.Title = "Delivery overdue"
		p.Message = fmt.Sprintf("Order %s was due on %s", po, o.DeliveryDate().Format(time.DateOnly))
	}
	return nil
}

func (e NotificationEmitter) fillRequest(p *notification.Params, ev Event) error {
	r := ev.Request
	if r == nil {
		return errs.NewValueIsRequiredError("request")
	}
	if err := r.Validate(); err != nil {
		return err
	}

	p.Entity = notification.EntityRef{Type: notification.EntityRequest, ID: r.ID().String(), DisplayNumber: r.Number()}
	p.Originator = r.CreatedBy()

	switch ev.Type {
	case notification.RequestCreated:
		p.Title = "New request"
		p.Message = fmt.Sprintf("Request %s for %s was created", r.Number(), r.Customer().Name)
	case notification.RequestUpdated:
		p.Title = "Request updated"
		p.Message = fmt.Sprintf("Request %s was updated", r.Number())
	case notification.RequestViewed:
		p.Title = "Request viewed"
		p.Message = fmt.Sprintf("Request %s was viewed", r.Number())
	case notification.RequestApproved:
		p.Title = "Request approved"
		p.Message = fmt.Sprintf("Request %s was approved", r.Number())
	case notification.RequestRejected:
		p.Title = "Request rejected"
		p.Message = fmt.Sprintf("Request %s was rejected", r.Number())
	case notification.RequestConverted:
		p.Title = "Request converted"
		p.Message = fmt.Sprintf("Request %s was converted to an order", r.Number())
		if ev.Order != nil {
			p.Message = fmt.Sprintf("Request %s was converted to order %s", r.Number(), ev.Order.PONumber())
			p.Metadata["orderId"] = ev.Order.ID().String()
		}
	}
	return nil
}

func fieldChanges(rev order.Revision) []notification.FieldChange {
	changed := rev.ChangedFields()
	out := make([]notification.FieldChange, 0, len(changed))
	for _, f := range changed {
		out = append(out, notification.FieldChange{
			Field: string(f),
			From:  rev.PreviousValues.Describe(f),
			To:    rev.Changes.Describe(f),
		})
	}
	return out
}
