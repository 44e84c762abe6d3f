// Package http exposes the order engine as a JSON API over echo.
//
// Every route except /health requires a bearer token; the token's subject,
// role and supplier claims become the acting kernel.Actor.
package http

import (
	"context"
	"io"
	"net/http"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/application/usecases/queries"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	editOrderHandler interface {
		Handle(ctx context.Context, cmd commands.EditOrderCommand) error
	}
	changeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
	}
	viewOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ViewOrderCommand) (bool, error)
	}
	recordArrivalHandler interface {
		Handle(ctx context.Context, cmd commands.RecordArrivalCommand) error
	}
	notifyRequestEventHandler interface {
		Handle(ctx context.Context, cmd commands.NotifyRequestEventCommand) error
	}
	markNotificationReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) error
	}
	removeNotificationHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveNotificationCommand) error
	}
	storeImageHandler interface {
		Handle(ctx context.Context, cmd commands.StoreImageCommand) (string, error)
	}

	getOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.GetOrdersQueryResponse, error)
	}
	getOrderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (queries.GetOrderStatusQueryResponse, error)
	}
	getOrderRevisionsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderRevisionsQuery) ([]order.Revision, error)
	}
	getInboxHandler interface {
		Handle(ctx context.Context, query queries.GetInboxQuery) (queries.GetInboxQueryResponse, error)
	}
	getImageHandler interface {
		Handle(ctx context.Context, query queries.GetImageQuery) ([]byte, error)
	}

	liveFeed interface {
		Serve(w http.ResponseWriter, r *http.Request, actor kernel.Actor, supplierName string) error
	}
)

// Handlers lists the use cases behind the routes. All are required.
type Handlers struct {
	CreateOrder          createOrderHandler
	EditOrder            editOrderHandler
	ChangeOrderStatus    changeOrderStatusHandler
	ViewOrder            viewOrderHandler
	RecordArrival        recordArrivalHandler
	NotifyRequestEvent   notifyRequestEventHandler
	MarkNotificationRead markNotificationReadHandler
	RemoveNotification   removeNotificationHandler
	StoreImage           storeImageHandler

	GetOrders         getOrdersHandler
	GetOrderStatus    getOrderStatusHandler
	GetOrderRevisions getOrderRevisionsHandler
	GetInbox          getInboxHandler
	GetImage          getImageHandler

	Live liveFeed
}

type Server struct {
	h    Handlers
	auth Authenticator
}

func NewServer(h Handlers, auth Authenticator) *Server {
	return &Server{h: h, auth: auth}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})

	api := e.Group("/api/v1", s.auth.Middleware())

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.PUT("/orders/:id", s.EditOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.GET("/orders/:id/status", s.GetOrderStatus)
	api.POST("/orders/:id/view", s.ViewOrder)
	api.POST("/orders/:id/arrival", s.RecordArrival)
	api.GET("/orders/:id/revisions", s.GetOrderRevisions)

	api.POST("/requests/:id/events", s.NotifyRequestEvent)

	api.GET("/notifications", s.GetInbox)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.DELETE("/notifications/:id", s.RemoveNotification)

	api.POST("/images", s.StoreImage)
	api.GET("/images/:id", s.GetImage)

	api.GET("/ws", s.Live)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, badRequest(err)
	}
	return id, nil
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return err
	}
	cmd, err := body.command(actorOf(c))
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]kernel.UUID{"id": cmd.Header().ID})
}

// GetOrders handles GET /orders. Suppliers only ever see their own factory;
// other roles may filter with ?supplier=.
func (s *Server) GetOrders(c echo.Context) error {
	supplier := c.QueryParam("supplier")
	if actorOf(c).Role == kernel.Supplier {
		supplier = supplierOf(c)
	}
	orders, err := s.h.GetOrders.Handle(c.Request().Context(), queries.NewGetOrdersQuery(supplier))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// EditOrder handles PUT /orders/:id.
func (s *Server) EditOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body OrderEdit
	if err = c.Bind(&body); err != nil {
		return err
	}
	cmd, err := body.command(actorOf(c), id)
	if err != nil {
		return err
	}
	if err = s.h.EditOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body StatusChange
	if err = c.Bind(&body); err != nil {
		return err
	}
	cmd, err := body.command(actorOf(c), id)
	if err != nil {
		return err
	}
	if err = s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetOrderStatus handles GET /orders/:id/status.
func (s *Server) GetOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderStatusQuery(id)
	if err != nil {
		return err
	}
	resp, err := s.h.GetOrderStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// ViewOrder handles POST /orders/:id/view.
func (s *Server) ViewOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewViewOrderCommand(actorOf(c), id)
	if err != nil {
		return err
	}
	changed, err := s.h.ViewOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ViewResult{Changed: changed})
}

// RecordArrival handles POST /orders/:id/arrival.
func (s *Server) RecordArrival(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body Arrival
	if err = c.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewRecordArrivalCommand(actorOf(c), id, body.Arrived)
	if err != nil {
		return err
	}
	if err = s.h.RecordArrival.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetOrderRevisions handles GET /orders/:id/revisions.
func (s *Server) GetOrderRevisions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderRevisionsQuery(id)
	if err != nil {
		return err
	}
	revisions, err := s.h.GetOrderRevisions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revisions)
}

// NotifyRequestEvent handles POST /requests/:id/events.
func (s *Server) NotifyRequestEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body RequestEvent
	if err = c.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewNotifyRequestEventCommand(actorOf(c), id, body.EventType)
	if err != nil {
		return err
	}
	if err = s.h.NotifyRequestEvent.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// GetInbox handles GET /notifications.
func (s *Server) GetInbox(c echo.Context) error {
	query, err := queries.NewGetInboxQuery(actorOf(c), supplierOf(c))
	if err != nil {
		return err
	}
	inbox, err := s.h.GetInbox.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inbox)
}

// MarkNotificationRead handles POST /notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkNotificationReadCommand(actorOf(c), id)
	if err != nil {
		return err
	}
	if err = s.h.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveNotification handles DELETE /notifications/:id.
func (s *Server) RemoveNotification(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRemoveNotificationCommand(actorOf(c), id)
	if err != nil {
		return err
	}
	if err = s.h.RemoveNotification.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StoreImage handles POST /images. The body is the raw image.
func (s *Server) StoreImage(c echo.Context) error {
	blob, err := io.ReadAll(io.LimitReader(c.Request().Body, commands.MaxImageBytes+1))
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewStoreImageCommand(blob, c.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return err
	}
	id, err := s.h.StoreImage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ImageCreated{ID: id})
}

// GetImage handles GET /images/:id.
func (s *Server) GetImage(c echo.Context) error {
	query, err := queries.NewGetImageQuery(c.Param("id"))
	if err != nil {
		return err
	}
	blob, err := s.h.GetImage.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, http.DetectContentType(blob), blob)
}

// Live handles GET /ws by handing the connection to the notification hub.
func (s *Server) Live(c echo.Context) error {
	if err := s.h.Live.Serve(c.Response(), c.Request(), actorOf(c), supplierOf(c)); err != nil {
		// The upgrader has already written the response.
		c.Logger().Warnf("websocket upgrade failed: %v", err)
	}
	return nil
}
