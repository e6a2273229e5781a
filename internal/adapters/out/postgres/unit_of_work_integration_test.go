package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	pgadapter "warehouse/internal/adapters/out/postgres"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// claimUoWFactory and stockUoWFactory narrow the adapter's factory to the
// shapes the command handlers take, as the composition root does.
type claimUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f claimUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

type stockUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f stockUoWFactory) Create() commands.ProductUoW {
	return f.factory.Create()
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite exercises transactions spanning the order,
// driver and product repositories against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockEventPublisher
	factory   ports.UnitOfWorkFactory
	now       time.Time
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, dsn, err := testutil.StartPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	db, err := pgadapter.Open(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(pgadapter.Migrate(db))
	suite.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_assignments, drivers, products").Error
	suite.Require().NoError(err)

	suite.publisher = new(MockEventPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.factory = pgadapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, logger)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Crate", 1, decimal.RequireFromString("100.00"))
	suite.Require().NoError(err)
	shipping, err := order.NewShippingInfo("Ann Lee", "555-0100", "", "1 Dock Rd", "Toronto", "", "CA")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Ann Lee", []order.Item{item}, shipping, suite.now)
	suite.Require().NoError(err)
	return o
}

// seedReadyOrder stores a Ready for Pickup order outside any unit of work.
func (suite *UnitOfWorkIntegrationTestSuite) seedReadyOrder() kernel.UUID {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.Require().NoError(o.Prepare("", suite.now))
	o.PullEvents()

	uow := pgadapter.NewGormUnitOfWorkFactory(suite.db, nil, slog.New(slog.NewTextHandler(io.Discard, nil))).Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o.ID()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow2.ProductRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesEventsAfterCommit() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.Event) bool {
		return len(events) == 1 && events[0].Type == order.EventPlaced && events[0].OrderID.IsEqual(o.ID())
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.Empty(o.PullEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishFailureDoesNotFailCommit() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	p, err := product.NewProduct(kernel.NewUUID(), "Crate", "", decimal.NewFromInt(100), 3, suite.now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.factory.Create().ProductRepository().Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Empty(o.PullEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStockBatch_RollsBackTogether() {
	ctx := suite.T().Context()
	plenty, err := product.NewProduct(kernel.NewUUID(), "Crate", "", decimal.NewFromInt(100), 10, suite.now)
	suite.Require().NoError(err)
	scarce, err := product.NewProduct(kernel.NewUUID(), "Pallet", "", decimal.NewFromInt(40), 1, suite.now)
	suite.Require().NoError(err)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.ProductRepository().Add(ctx, plenty))
	suite.Require().NoError(seed.ProductRepository().Add(ctx, scarce))
	suite.Require().NoError(seed.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().DecreaseStock(ctx, plenty.ID(), 4))
	err = uow.ProductRepository().DecreaseStock(ctx, scarce.ID(), 2)
	suite.Require().ErrorIs(err, product.ErrInsufficientStock)
	suite.Require().NoError(uow.Rollback(ctx))

	reloaded, err := suite.factory.Create().ProductRepository().Get(ctx, plenty.ID())
	suite.Require().NoError(err)
	suite.Equal(10, reloaded.StockQuantity())
}

// TestConcurrentClaims races many drivers for one order; exactly one wins
// and every other claim fails with a conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentClaims_ExactlyOneWins() {
	ctx := suite.T().Context()
	orderID := suite.seedReadyOrder()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	const drivers = 8
	results := make(chan error, drivers)
	var wg sync.WaitGroup
	for range drivers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.claim(ctx, orderID, kernel.NewUUID())
		}()
	}
	wg.Wait()
	close(results)

	var won, conflicts int
	for err := range results {
		switch {
		case err == nil:
			won++
		case errs.KindOf(err) == errs.KindConflict:
			conflicts++
		default:
			suite.Failf("unexpected claim error", "%v", err)
		}
	}
	suite.Equal(1, won)
	suite.Equal(drivers-1, conflicts)

	var assignments int64
	suite.Require().NoError(suite.db.Table("order_assignments").Where("order_id = ?", orderID.Bytes()).Count(&assignments).Error)
	suite.Equal(int64(1), assignments)

	var assigned int64
	suite.Require().NoError(suite.db.Table("drivers").Where("status = ?", "Assigned").Count(&assigned).Error)
	suite.Equal(int64(1), assigned, "only the winning driver is marked busy")
}

func (suite *UnitOfWorkIntegrationTestSuite) claim(ctx context.Context, orderID, userID kernel.UUID) error {
	cmd, err := commands.NewClaimOrderCommand(orderID, userID)
	if err != nil {
		return err
	}
	return commands.NewClaimOrderCommandHandler(claimUoWFactory{suite.factory}).Handle(ctx, cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestClaimDeliveredOrder_InvalidState() {
	ctx := suite.T().Context()
	orderID := suite.seedReadyOrder()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	driverUserID := kernel.NewUUID()
	suite.Require().NoError(suite.claim(ctx, orderID, driverUserID))

	deliver, err := commands.NewUpdateDeliveryCommand(orderID, driverUserID, order.DeliveryDelivered, "")
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewUpdateDeliveryCommandHandler(claimUoWFactory{suite.factory}).Handle(ctx, deliver))

	err = suite.claim(ctx, orderID, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrInvalidState)
	suite.Equal(errs.KindInvalidState, errs.KindOf(err))
}

// TestConcurrentStockBatches_OppositeOrder runs batches naming the same
// products in opposite orders. None may fail and every unit is accounted for.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentStockBatches_OppositeOrder() {
	ctx := suite.T().Context()
	first, err := product.NewProduct(kernel.NewUUID(), "Crate", "", decimal.NewFromInt(100), 100, suite.now)
	suite.Require().NoError(err)
	second, err := product.NewProduct(kernel.NewUUID(), "Pallet", "", decimal.NewFromInt(40), 100, suite.now)
	suite.Require().NoError(err)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.ProductRepository().Add(ctx, first))
	suite.Require().NoError(seed.ProductRepository().Add(ctx, second))
	suite.Require().NoError(seed.Commit(ctx))

	forward, err := commands.NewUpdateStockCommand([]commands.StockItem{
		{ProductID: first.ID(), Quantity: 1},
		{ProductID: second.ID(), Quantity: 1},
	})
	suite.Require().NoError(err)
	backward, err := commands.NewUpdateStockCommand([]commands.StockItem{
		{ProductID: second.ID(), Quantity: 1},
		{ProductID: first.ID(), Quantity: 1},
	})
	suite.Require().NoError(err)
	handler := commands.NewUpdateStockCommandHandler(stockUoWFactory{suite.factory})

	const batches = 20
	results := make(chan error, batches)
	var wg sync.WaitGroup
	for i := range batches {
		cmd := forward
		if i%2 == 1 {
			cmd = backward
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- handler.Handle(ctx, cmd)
		}()
	}
	wg.Wait()
	close(results)

	for err := range results {
		suite.Require().NoError(err)
	}
	for _, id := range []kernel.UUID{first.ID(), second.ID()} {
		reloaded, err := suite.factory.Create().ProductRepository().Get(ctx, id)
		suite.Require().NoError(err)
		suite.Equal(100-batches, reloaded.StockQuantity())
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
