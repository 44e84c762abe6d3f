package commands_test

import (
	"context"
	"testing"
	"time"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/model/request"
	"jewelryorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now         = time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	coordinator = kernel.Actor{ID: "jb-1", Role: kernel.Coordinator}
	supplier    = kernel.Actor{ID: "pabrik-1", Role: kernel.Supplier}
	sales       = kernel.Actor{ID: "sales-7", Role: kernel.Sales}
	system      = kernel.Actor{ID: "scheduler", Role: kernel.Coordinator}
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Load(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, orders []*order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Load(ctx context.Context) ([]*request.Request, error) {
	args := m.Called(ctx)
	reqs, _ := args.Get(0).([]*request.Request)
	return reqs, args.Error(1)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*request.Request)
	return r, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Append(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForRole(ctx context.Context, role kernel.Role) ([]*notification.Notification, error) {
	args := m.Called(ctx, role)
	ns, _ := args.Get(0).([]*notification.Notification)
	return ns, args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct {
	mock.Mock
	orders        *MockOrderRepository
	requests      *MockRequestRepository
	notifications *MockNotificationRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository               { return m.orders }
func (m *MockUoW) RequestRepository() ports.RequestRepository           { return m.requests }
func (m *MockUoW) NotificationRepository() ports.NotificationRepository { return m.notifications }

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockNotificationUoWFactory struct{ uow *MockUoW }

func (f MockNotificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) Set(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}

func (m *MockStatusCache) Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Status), args.Bool(1), args.Error(2)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	args := m.Called(ctx, id)
	blob, _ := args.Get(0).([]byte)
	return blob, args.Bool(1), args.Error(2)
}

func (m *MockImageStore) Put(ctx context.Context, blob []byte, mime string) (string, error) {
	args := m.Called(ctx, blob, mime)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageStore) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	args := m.Called(ctx, days)
	return args.Int(0), args.Error(1)
}

// newUoW returns a unit of work whose Begin and Rollback always succeed.
// Commit expectations are left to each test.
func newUoW() *MockUoW {
	uow := &MockUoW{
		orders:        new(MockOrderRepository),
		requests:      new(MockRequestRepository),
		notifications: new(MockNotificationRepository),
	}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.requests.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func collaborators(publisher *MockPublisher, cache *MockStatusCache) commands.Collaborators {
	c := commands.Collaborators{
		Clock: kernel.FixedClock(now),
		IDs:   kernel.NewSequenceGenerator("line"),
	}
	if publisher != nil {
		c.Publisher = publisher
	}
	if cache != nil {
		c.Cache = cache
	}
	return c
}

func existingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.Header{
		ID:           kernel.NewUUID(),
		PONumber:     "PO-5",
		Factory:      kernel.Reference{ID: "f-1", Name: "Sinar Mas"},
		DeliveryDate: now.AddDate(0, 0, 2),
	}, order.Content{
		Category:  order.Basic,
		BasicName: "Rantai Italy",
		Items: []order.DetailItem{
			{ID: "i-1", Purity: "8k", Color: "rg", Size: "45", Weight: "2", Pcs: 2},
			{ID: "i-2", Purity: "8k", Color: "rg", Size: "45", Weight: "3", Pcs: 1},
		},
	}, coordinator, now.Add(-48*time.Hour))
	require.NoError(t, err)
	return o
}

func notificationOf(eventType notification.EventType) any {
	return mock.MatchedBy(func(n *notification.Notification) bool {
		return n.EventType() == eventType
	})
}
