package queries

import (
	"context"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
)

type notificationLister interface {
	ListForRole(ctx context.Context, role kernel.Role) ([]*notification.Notification, error)
}

type GetInboxQueryHandler struct {
	notifications notificationLister
}

func NewGetInboxQueryHandler(notifications notificationLister) GetInboxQueryHandler {
	return GetInboxQueryHandler{notifications: notifications}
}

// Handle returns the visible notifications newest first with the number
// still unread by the actor.
func (h GetInboxQueryHandler) Handle(ctx context.Context, query GetInboxQuery) (GetInboxQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInboxQueryResponse{}, err
	}
	actor := query.Actor()

	ns, err := h.notifications.ListForRole(ctx, actor.Role)
	if err != nil {
		return GetInboxQueryResponse{}, err
	}

	resp := GetInboxQueryResponse{Items: make([]InboxItem, 0, len(ns))}
	for _, n := range ns {
		if !n.VisibleTo(actor, query.SupplierName()) {
			continue
		}
		read := n.IsReadBy(actor.ID)
		if !read {
			resp.Unread++
		}
		resp.Items = append(resp.Items, InboxItem{
			ID:        n.ID(),
			EventType: n.EventType(),
			Timestamp: n.Timestamp(),
			Actor:     n.Actor(),
			Entity:    n.Entity(),
			Title:     n.Title(),
			Message:   n.Message(),
			Changes:   n.Changes(),
			Metadata:  n.Metadata(),
			Read:      read,
		})
	}
	return resp, nil
}
