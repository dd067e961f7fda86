package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding read model tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {}

// OrderQueriesIntegrationTestSuite exercises the three dashboard read models
// against PostgreSQL, seeding orders through the write-side repository.
type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &orderrepo.HistoryEntryDTO{}))

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history").Error)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesIntegrationTestSuite) TestPendingForBusiness_ReturnsCreatedOrdersOldestFirst() {
	ctx := context.Background()
	businessID := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	newer := suite.seedOrder(ctx, kernel.NewUUID(), businessID, base.Add(10*time.Minute))
	older := suite.seedOrder(ctx, kernel.NewUUID(), businessID, base)

	// A confirmed order at the same business and a created order at another
	// business are both out of the queue.
	confirmed := suite.seedOrder(ctx, kernel.NewUUID(), businessID, base)
	suite.transition(ctx, confirmed, order.StatusConfirmed,
		suite.mustActor(businessID, kernel.RoleBusiness))
	suite.seedOrder(ctx, kernel.NewUUID(), kernel.NewUUID(), base)

	handler := queries.NewPendingForBusinessQueryHandler(suite.db)
	query, err := queries.NewPendingForBusinessQuery(businessID)
	suite.Require().NoError(err)

	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.True(responses[0].ID.IsEqual(older.ID()))
	suite.True(responses[1].ID.IsEqual(newer.ID()))

	suite.Equal(order.StatusCreated, responses[0].Status)
	suite.ElementsMatch(
		[]order.Status{order.StatusConfirmed, order.StatusCancelled},
		responses[0].Actions)
	suite.Equal("55.50", responses[0].Total)
}

func (suite *OrderQueriesIntegrationTestSuite) TestActiveForCourier_ReturnsWorkingSet() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	otherCourier := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	unclaimed := suite.seedOrderInStatus(ctx, order.StatusReadyForPickup, nil, base)
	carrying := suite.seedOrderInStatus(ctx, order.StatusPickedUp, &courierID, base.Add(time.Minute))
	delivering := suite.seedOrderInStatus(ctx, order.StatusDelivering, &courierID, base.Add(2*time.Minute))

	// Another courier's delivery, a completed one, and an unready order are
	// all outside this courier's working set.
	suite.seedOrderInStatus(ctx, order.StatusPickedUp, &otherCourier, base)
	suite.seedOrderInStatus(ctx, order.StatusDelivered, &courierID, base)
	suite.seedOrderInStatus(ctx, order.StatusPreparing, nil, base)

	handler := queries.NewActiveForCourierQueryHandler(suite.db)
	query, err := queries.NewActiveForCourierQuery(courierID)
	suite.Require().NoError(err)

	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 3)

	// Unclaimed pickups come first, then the courier's own deliveries.
	suite.True(responses[0].ID.IsEqual(unclaimed.ID()))
	suite.Nil(responses[0].CourierID)
	suite.ElementsMatch([]order.Status{order.StatusPickedUp}, responses[0].Actions)

	suite.True(responses[1].ID.IsEqual(carrying.ID()))
	suite.ElementsMatch(
		[]order.Status{order.StatusDelivering, order.StatusDelivered},
		responses[1].Actions)

	suite.True(responses[2].ID.IsEqual(delivering.ID()))
	suite.ElementsMatch([]order.Status{order.StatusDelivered}, responses[2].Actions)
}

func (suite *OrderQueriesIntegrationTestSuite) TestCustomerHistory_ReturnsAllOrdersNewestFirst() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	oldest := suite.seedOrder(ctx, customerID, kernel.NewUUID(), base)
	suite.transition(ctx, oldest, order.StatusCancelled,
		suite.mustActor(customerID, kernel.RoleCustomer))

	middle := suite.seedOrder(ctx, customerID, kernel.NewUUID(), base.Add(10*time.Minute))
	newest := suite.seedOrder(ctx, customerID, kernel.NewUUID(), base.Add(20*time.Minute))

	// Another customer's order stays out of this history.
	suite.seedOrder(ctx, kernel.NewUUID(), kernel.NewUUID(), base)

	handler := queries.NewCustomerHistoryQueryHandler(suite.db)
	query, err := queries.NewCustomerHistoryQuery(customerID)
	suite.Require().NoError(err)

	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 3)
	suite.True(responses[0].ID.IsEqual(newest.ID()))
	suite.True(responses[1].ID.IsEqual(middle.ID()))
	suite.True(responses[2].ID.IsEqual(oldest.ID()))

	// Terminal orders stay visible with no remaining actions.
	suite.Equal(order.StatusCancelled, responses[2].Status)
	suite.Empty(responses[2].Actions)
}

func (suite *OrderQueriesIntegrationTestSuite) TestHandle_NotConstructedQuery_Fails() {
	ctx := context.Background()

	pendingHandler := queries.NewPendingForBusinessQueryHandler(suite.db)
	_, err := pendingHandler.Handle(ctx, queries.PendingForBusinessQuery{})
	suite.Require().ErrorIs(err, queries.ErrPendingForBusinessQueryIsNotConstructed)

	courierHandler := queries.NewActiveForCourierQueryHandler(suite.db)
	_, err = courierHandler.Handle(ctx, queries.ActiveForCourierQuery{})
	suite.Require().ErrorIs(err, queries.ErrActiveForCourierQueryIsNotConstructed)

	historyHandler := queries.NewCustomerHistoryQueryHandler(suite.db)
	_, err = historyHandler.Handle(ctx, queries.CustomerHistoryQuery{})
	suite.Require().ErrorIs(err, queries.ErrCustomerHistoryQueryIsNotConstructed)
}

func (suite *OrderQueriesIntegrationTestSuite) mustActor(id kernel.UUID, role kernel.Role) kernel.Actor {
	actor, err := kernel.NewActor(id, role)
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesIntegrationTestSuite) mustMoney(s string) kernel.Money {
	m, err := kernel.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

// seedOrder persists a fresh order in created status.
func (suite *OrderQueriesIntegrationTestSuite) seedOrder(
	ctx context.Context, customerID, businessID kernel.UUID, createdAt time.Time,
) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Adana Kebab", suite.mustMoney("45.50"), 1)
	suite.Require().NoError(err)

	snapshot := order.NewPriceBreakdown(
		suite.mustMoney("45.50"), suite.mustMoney("10.00"), kernel.ZeroMoney())

	seeded, err := order.NewOrder(kernel.NewUUID(), customerID, businessID,
		[]order.Item{item}, snapshot, "Ataturk Cad. 12, Kadikoy", "card", "ch_1", createdAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	return seeded
}

// seedOrderInStatus persists an order advanced along the happy path to the
// requested status, claimed by the given courier where one applies.
func (suite *OrderQueriesIntegrationTestSuite) seedOrderInStatus(
	ctx context.Context, target order.Status, courierID *kernel.UUID, createdAt time.Time,
) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Adana Kebab", suite.mustMoney("45.50"), 1)
	suite.Require().NoError(err)
	snapshot := order.NewPriceBreakdown(
		suite.mustMoney("45.50"), suite.mustMoney("10.00"), kernel.ZeroMoney())

	businessID := kernel.NewUUID()
	seeded, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), businessID,
		[]order.Item{item}, snapshot, "Ataturk Cad. 12, Kadikoy", "card", "ch_1", createdAt)
	suite.Require().NoError(err)

	business := suite.mustActor(businessID, kernel.RoleBusiness)
	businessPath := []order.Status{order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup}
	for _, to := range businessPath {
		suite.Require().NoError(seeded.TransitionTo(to, business, createdAt))
		if to == target {
			break
		}
	}

	if courierID != nil {
		courier := suite.mustActor(*courierID, kernel.RoleCourier)
		courierPath := []order.Status{order.StatusPickedUp, order.StatusDelivering, order.StatusDelivered}
		for _, to := range courierPath {
			if !seeded.Status().CanTransition(to, kernel.RoleCourier) {
				continue
			}
			suite.Require().NoError(seeded.TransitionTo(to, courier, createdAt))
			if seeded.Status() == target {
				break
			}
		}
	}

	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	return seeded
}

// transition applies one status change and persists it.
func (suite *OrderQueriesIntegrationTestSuite) transition(
	ctx context.Context, seeded *order.Order, to order.Status, actor kernel.Actor,
) {
	expected := seeded.Status()
	suite.Require().NoError(seeded.TransitionTo(to, actor, time.Now().UTC()))
	suite.Require().NoError(suite.orderRepo.UpdateWithStatusCheck(ctx, seeded, expected))
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
