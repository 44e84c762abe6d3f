package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "jewelryorders/internal/adapters/out/postgres"
	"jewelryorders/internal/adapters/out/postgres/pgtest"
	"jewelryorders/internal/core/application/usecases/queries"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type OrderQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *OrderQueriesTestSuite) save(orders ...*order.Order) {
	repo := postgres_adapter.NewGormUnitOfWorkFactory(suite.db).Create().OrderRepository()
	suite.Require().NoError(repo.Save(context.Background(), orders))
}

func (suite *OrderQueriesTestSuite) newOrder(po, factory string, due time.Time) *order.Order {
	o, err := order.NewOrder(order.Header{
		ID:           kernel.NewUUID(),
		PONumber:     po,
		Factory:      kernel.Reference{ID: "f-" + po, Name: factory},
		Customer:     kernel.Reference{ID: "c-1", Name: "Toko Emas"},
		DeliveryDate: due,
	}, order.Content{
		Category:  order.Basic,
		BasicName: "Rantai Italy",
		Items:     []order.DetailItem{{ID: "i-1", Purity: "8k", Color: "rg", Size: "45", Weight: "2", Pcs: 2}},
	}, coordinator, now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderQueriesTestSuite) TestGetOrders_AllOrderedByDeliveryDate() {
	late := suite.newOrder("PO-2", "Sinar Mas", now.AddDate(0, 0, 9))
	early := suite.newOrder("PO-1", "Cahaya", now.AddDate(0, 0, 3))
	suite.Require().NoError(late.ChangeStatus(coordinator, order.Cancelled, now))
	suite.save(late, early)

	result, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), queries.NewGetOrdersQuery(""))

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("PO-1", result[0].PONumber)
	suite.Equal("New", result[0].Status)
	suite.Equal("basic", result[0].Category)
	suite.Equal("PO-2", result[1].PONumber)
	suite.Equal("Cancelled", result[1].Status, "terminal orders are listed")
	suite.True(result[1].ID.IsEqual(late.ID()))
}

func (suite *OrderQueriesTestSuite) TestGetOrders_SupplierFilterIgnoresCase() {
	suite.save(
		suite.newOrder("PO-1", "Sinar Mas", now.AddDate(0, 0, 3)),
		suite.newOrder("PO-2", "Cahaya", now.AddDate(0, 0, 3)),
	)

	result, err := queries.NewGetOrdersQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetOrdersQuery("sinar mas"))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("Sinar Mas", result[0].FactoryName)
}

func (suite *OrderQueriesTestSuite) TestGetOrders_InvalidQuery() {
	result, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), queries.GetOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *OrderQueriesTestSuite) TestGetOrderRevisions() {
	o := suite.newOrder("PO-1", "Sinar Mas", now.AddDate(0, 0, 3))
	for i, name := range []string{"A", "B"} {
		suite.Require().NoError(o.ApplyRevision(order.Revision{
			Number:         i + 1,
			At:             now.Add(time.Duration(i+1) * time.Hour),
			Actor:          coordinator,
			Changes:        order.FieldSet{BasicName: order.StringPtr(name)},
			PreviousValues: order.FieldSet{BasicName: order.StringPtr(o.BasicName())},
		}, now.Add(time.Duration(i+1)*time.Hour)))
	}
	fresh := suite.newOrder("PO-2", "Sinar Mas", now.AddDate(0, 0, 3))
	suite.save(o, fresh)
	handler := queries.NewGetOrderRevisionsQueryHandler(suite.db)

	query, err := queries.NewGetOrderRevisionsQuery(o.ID())
	suite.Require().NoError(err)
	revisions, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(o.Revisions(), revisions)

	query, err = queries.NewGetOrderRevisionsQuery(fresh.ID())
	suite.Require().NoError(err)
	revisions, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(revisions)
	suite.Empty(revisions)

	query, err = queries.NewGetOrderRevisionsQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesTestSuite) TestGetOrderStatus_CacheMissFallsBackAndWarms() {
	o := suite.newOrder("PO-1", "Sinar Mas", now.AddDate(0, 0, 3))
	suite.Require().NoError(o.ChangeStatus(supplier, order.InProduction, now.Add(time.Hour)))
	suite.save(o)

	cache := new(MockStatusCache)
	cache.On("Get", mock.Anything, o.ID()).Return(order.Unknown, false, nil).Once()
	cache.On("Set", mock.Anything, o.ID(), order.InProduction, mock.Anything).Return(nil).Once()

	query, err := queries.NewGetOrderStatusQuery(o.ID())
	suite.Require().NoError(err)
	result, err := queries.NewGetOrderStatusQueryHandler(suite.db, cache, nil).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("InProduction", result.Status)
	suite.False(result.Cached)
	suite.Equal(now.Add(time.Hour), result.UpdatedAt)
	cache.AssertExpectations(suite.T())
}

func (suite *OrderQueriesTestSuite) TestGetOrderStatus_UnknownOrder() {
	query, err := queries.NewGetOrderStatusQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderStatusQueryHandler(suite.db, nil, nil).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderQueriesTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderQueriesTestSuite))
}
