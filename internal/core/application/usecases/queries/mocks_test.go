package queries_test

import (
	"context"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

var (
	now         = time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	coordinator = kernel.Actor{ID: "jb-1", Role: kernel.Coordinator}
	supplier    = kernel.Actor{ID: "pabrik-1", Role: kernel.Supplier}
	sales       = kernel.Actor{ID: "sales-7", Role: kernel.Sales}
)

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) Set(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}

func (m *MockStatusCache) Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Status), args.Bool(1), args.Error(2)
}

type MockNotificationLister struct{ mock.Mock }

func (m *MockNotificationLister) ListForRole(ctx context.Context, role kernel.Role) ([]*notification.Notification, error) {
	args := m.Called(ctx, role)
	ns, _ := args.Get(0).([]*notification.Notification)
	return ns, args.Error(1)
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
	return m.Called(ctx, id).Error(0)
}

func (m *MockImageStore) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	args := m.Called(ctx, days)
	return args.Int(0), args.Error(1)
}
