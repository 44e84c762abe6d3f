package cmd

import (
	"log/slog"

	httpin "jewelryorders/internal/adapters/in/http"
	"jewelryorders/internal/adapters/in/ws"
	"jewelryorders/internal/adapters/out/fanout"
	"jewelryorders/internal/adapters/out/postgres"
	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/application/usecases/queries"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/ports"
	"jewelryorders/internal/jobs"

	"gorm.io/gorm"
)

// Infrastructure holds the clients main builds from Config. Cache and
// Events may be nil.
type Infrastructure struct {
	Cache  ports.StatusCache
	Images ports.ImageStore
	Events ports.NotificationPublisher
	Logger *slog.Logger
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	infra      Infrastructure
	hub        *ws.Hub
	collab     commands.Collaborators
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, infra Infrastructure) CompositionRoot {
	if infra.Logger == nil {
		infra.Logger = slog.Default()
	}
	hub := ws.NewHub(infra.Logger)
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		infra:      infra,
		hub:        hub,
		collab: commands.Collaborators{
			Clock:     kernel.SystemClock,
			IDs:       kernel.UUIDGenerator{},
			Publisher: fanout.NewPublisher(hub, infra.Events),
			Cache:     infra.Cache,
			Logger:    infra.Logger.With("component", "commands"),
		},
	}
}

// Hub is the live notification feed; main runs it.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWs() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.uows(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() *commands.EditOrderCommandHandler {
	h := commands.NewEditOrderCommandHandler(c.orderUoWs(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWs(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateViewOrderCommandHandler() *commands.ViewOrderCommandHandler {
	h := commands.NewViewOrderCommandHandler(c.orderUoWs(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateRecordArrivalCommandHandler() *commands.RecordArrivalCommandHandler {
	h := commands.NewRecordArrivalCommandHandler(c.orderUoWs(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateNotifyRequestEventCommandHandler() *commands.NotifyRequestEventCommandHandler {
	h := commands.NewNotifyRequestEventCommandHandler(c.uows(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateSendDeliveryRemindersCommandHandler() *commands.SendDeliveryRemindersCommandHandler {
	h := commands.NewSendDeliveryRemindersCommandHandler(c.orderUoWs(), c.collab)
	return &h
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() *commands.MarkNotificationReadCommandHandler {
	h := commands.NewMarkNotificationReadCommandHandler(c.notificationUoWs())
	return &h
}

func (c *CompositionRoot) CreateRemoveNotificationCommandHandler() *commands.RemoveNotificationCommandHandler {
	h := commands.NewRemoveNotificationCommandHandler(c.notificationUoWs())
	return &h
}

func (c *CompositionRoot) CreateStoreImageCommandHandler() *commands.StoreImageCommandHandler {
	h := commands.NewStoreImageCommandHandler(c.infra.Images)
	return &h
}

func (c *CompositionRoot) CreatePurgeImagesCommandHandler() *commands.PurgeImagesCommandHandler {
	h := commands.NewPurgeImagesCommandHandler(c.infra.Images)
	return &h
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB, c.infra.Cache, c.infra.Logger)
}

func (c *CompositionRoot) CreateGetOrderRevisionsQueryHandler() queries.GetOrderRevisionsQueryHandler {
	return queries.NewGetOrderRevisionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInboxQueryHandler() queries.GetInboxQueryHandler {
	return queries.NewGetInboxQueryHandler(c.uowFactory.New().NotificationRepository())
}

func (c *CompositionRoot) CreateGetImageQueryHandler() queries.GetImageQueryHandler {
	return queries.NewGetImageQueryHandler(c.infra.Images)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		EditOrder:            c.CreateEditOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		ViewOrder:            c.CreateViewOrderCommandHandler(),
		RecordArrival:        c.CreateRecordArrivalCommandHandler(),
		NotifyRequestEvent:   c.CreateNotifyRequestEventCommandHandler(),
		MarkNotificationRead: c.CreateMarkNotificationReadCommandHandler(),
		RemoveNotification:   c.CreateRemoveNotificationCommandHandler(),
		StoreImage:           c.CreateStoreImageCommandHandler(),
		GetOrders:            c.CreateGetOrdersQueryHandler(),
		GetOrderStatus:       c.CreateGetOrderStatusQueryHandler(),
		GetOrderRevisions:    c.CreateGetOrderRevisionsQueryHandler(),
		GetInbox:             c.CreateGetInboxQueryHandler(),
		GetImage:             c.CreateGetImageQueryHandler(),
		Live:                 c.hub,
	}, httpin.NewAuthenticator(c.cfg.JWTSecret))
}

// CreateJobManager wires the scheduled jobs. Reminders are sent on behalf
// of a coordinator system actor.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	scheduler := kernel.Actor{ID: c.cfg.SchedulerActorID, Role: kernel.Coordinator}
	return jobs.NewJobManager(
		jobs.NewDeliveryReminderJob(c.CreateSendDeliveryRemindersCommandHandler(), scheduler,
			c.cfg.ReminderWindowDays, c.cfg.ReminderCronSpec, c.infra.Logger),
		jobs.NewImagePurgeJob(c.CreatePurgeImagesCommandHandler(),
			c.cfg.ImageRetentionDays, c.cfg.ImagePurgeCronSpec, c.infra.Logger),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
