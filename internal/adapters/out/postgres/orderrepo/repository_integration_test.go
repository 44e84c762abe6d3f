package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"jewelryorders/internal/adapters/out/postgres/orderrepo"
	"jewelryorders/internal/adapters/out/postgres/pgtest"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

var (
	createdAt   = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	coordinator = kernel.Actor{ID: "jb-1", Role: kernel.Coordinator}
	supplier    = kernel.Actor{ID: "pabrik-1", Role: kernel.Supplier}
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), func(db *gorm.DB) error {
		return db.AutoMigrate(&orderrepo.OrderDTO{})
	})
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(po string) *order.Order {
	requestID := kernel.NewUUID()
	o, err := order.NewOrder(order.Header{
		ID:           kernel.NewUUID(),
		PONumber:     po,
		RequestID:    &requestID,
		Factory:      kernel.Reference{ID: "f-1", Name: "Sinar Mas"},
		Customer:     kernel.Reference{ID: "c-1", Name: "Toko Emas"},
		DeliveryDate: createdAt.AddDate(0, 0, 14),
	}, order.Content{
		Category:    order.Basic,
		ProductType: "chain",
		BasicName:   "Rantai Italy",
		Items: []order.DetailItem{
			{ID: "i-1", Purity: "8k", Color: "rg", Size: "45", Weight: "2", Pcs: 2, Notes: "rush"},
			{ID: "i-2", Purity: "8k", Color: "rg", Size: "50", Weight: "3", Pcs: 1},
		},
	}, coordinator, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_NewOrder_RoundTrips() {
	ctx := context.Background()
	o := suite.newOrder("PO-1")
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Save(ctx, []*order.Order{o}))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Snapshot(), got.Snapshot())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_ExistingOrder_OverwritesRow() {
	ctx := context.Background()
	o := suite.newOrder("PO-2")
	suite.tracker.On("TrackAggregate", o.ID(), o).Twice()
	suite.Require().NoError(suite.repository.Save(ctx, []*order.Order{o}))

	rev := order.Revision{
		Number:         1,
		At:             createdAt.Add(time.Hour),
		Actor:          supplier,
		Changes:        order.FieldSet{BasicName: order.StringPtr("Rantai Singapore")},
		PreviousValues: order.FieldSet{BasicName: order.StringPtr("Rantai Italy")},
	}
	suite.Require().NoError(o.ApplyRevision(rev, rev.At))
	suite.Require().NoError(suite.repository.Save(ctx, []*order.Order{o}))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Viewed, got.Status())
	suite.Equal("Rantai Singapore", got.BasicName())
	suite.Require().Len(got.Revisions(), 1)
	suite.Equal(rev, got.Revisions()[0])

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_LeavesOtherOrdersAlone() {
	ctx := context.Background()
	first := suite.newOrder("PO-3")
	second := suite.newOrder("PO-4")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Save(ctx, []*order.Order{first, second}))
	suite.Require().NoError(first.ChangeStatus(coordinator, order.Cancelled, createdAt.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Save(ctx, []*order.Order{first}))

	all, err := suite.repository.Load(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)

	statuses := map[string]order.Status{}
	for _, o := range all {
		statuses[o.PONumber()] = o.Status()
	}
	suite.Equal(order.Cancelled, statuses["PO-3"])
	suite.Equal(order.New, statuses["PO-4"])
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_Empty_IsNoop() {
	suite.Require().NoError(suite.repository.Save(context.Background(), nil))
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLoad_EmptyTable() {
	all, err := suite.repository.Load(context.Background())

	suite.Require().NoError(err)
	suite.NotNil(all)
	suite.Empty(all)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
