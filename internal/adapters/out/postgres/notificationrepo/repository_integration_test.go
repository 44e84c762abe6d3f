package notificationrepo_test

import (
	"context"
	"testing"
	"time"

	"jewelryorders/internal/adapters/out/postgres/notificationrepo"
	"jewelryorders/internal/adapters/out/postgres/pgtest"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRepository
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), func(db *gorm.DB) error {
		return db.AutoMigrate(&notificationrepo.NotificationDTO{})
	})
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.repository = notificationrepo.NewGormNotificationRepository(db)
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) newNotification(at time.Time, audience ...kernel.Role) *notification.Notification {
	n, err := notification.NewNotification(notification.Params{
		ID:          kernel.NewUUID(),
		EventType:   notification.OrderRevised,
		Timestamp:   at,
		Actor:       kernel.Actor{ID: "jb-1", Role: kernel.Coordinator},
		Entity:      notification.EntityRef{Type: notification.EntityOrder, ID: "o-1", DisplayNumber: "PO-1"},
		Audience:    audience,
		AddressedTo: "Sinar Mas",
		Title:       "Order revised",
		Message:     "Order PO-1 was revised",
		Changes:     []notification.FieldChange{{Field: "basicName", From: "A", To: "B"}},
		Metadata:    map[string]string{"revision": "1"},
	})
	suite.Require().NoError(err)
	return n
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAppend_RoundTrips() {
	ctx := context.Background()
	n := suite.newNotification(t0, kernel.Coordinator, kernel.Supplier)

	suite.Require().NoError(suite.repository.Append(ctx, n))

	got, err := suite.repository.Get(ctx, n.ID())
	suite.Require().NoError(err)
	suite.True(n.ID().IsEqual(got.ID()))
	suite.Equal(notification.OrderRevised, got.EventType())
	suite.Equal(t0, got.Timestamp())
	suite.Equal(n.Actor(), got.Actor())
	suite.Equal(n.Entity(), got.Entity())
	suite.Equal([]kernel.Role{kernel.Coordinator, kernel.Supplier}, got.Audience())
	suite.Equal("Sinar Mas", got.AddressedTo())
	suite.Equal(n.Changes(), got.Changes())
	suite.Equal(map[string]string{"revision": "1"}, got.Metadata())
	suite.Empty(got.ReadBy())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAppend_DuplicateID_KeepsFirst() {
	ctx := context.Background()
	n := suite.newNotification(t0, kernel.Supplier)
	suite.Require().NoError(suite.repository.Append(ctx, n))

	n.MarkRead("pabrik-1")
	suite.Require().NoError(suite.repository.Append(ctx, n))

	got, err := suite.repository.Get(ctx, n.ID())
	suite.Require().NoError(err)
	suite.Empty(got.ReadBy())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestUpdate_PersistsMarkers() {
	ctx := context.Background()
	n := suite.newNotification(t0, kernel.Supplier)
	suite.Require().NoError(suite.repository.Append(ctx, n))

	n.MarkRead("pabrik-1")
	n.Remove("pabrik-2")
	suite.Require().NoError(suite.repository.Update(ctx, n))

	got, err := suite.repository.Get(ctx, n.ID())
	suite.Require().NoError(err)
	suite.Equal([]string{"pabrik-1"}, got.ReadBy())
	suite.Equal([]string{"pabrik-2"}, got.RemovedBy())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestUpdate_Unknown_ReturnsNotFound() {
	n := suite.newNotification(t0, kernel.Supplier)

	err := suite.repository.Update(context.Background(), n)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestListForRole_FiltersByAudienceNewestFirst() {
	ctx := context.Background()
	older := suite.newNotification(t0, kernel.Coordinator, kernel.Supplier)
	newer := suite.newNotification(t0.Add(time.Hour), kernel.Supplier)
	other := suite.newNotification(t0.Add(2*time.Hour), kernel.Sales)
	for _, n := range []*notification.Notification{older, newer, other} {
		suite.Require().NoError(suite.repository.Append(ctx, n))
	}

	got, err := suite.repository.ListForRole(ctx, kernel.Supplier)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].ID().IsEqual(newer.ID()))
	suite.True(got[1].ID().IsEqual(older.ID()))
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
