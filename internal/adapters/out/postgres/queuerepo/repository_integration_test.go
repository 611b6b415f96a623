package queuerepo_test

import (
	"context"
	"testing"
	"time"

	"rateshop/internal/adapters/out/postgres/queuerepo"
	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderQueueIntegrationTestSuite verifies queued snapshots survive the round
// trip through PostgreSQL and that the queue drains oldest first.
type OrderQueueIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	queue     *queuerepo.GormOrderQueue
}

func (suite *OrderQueueIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&queuerepo.QueuedOrderDTO{}))
}

func (suite *OrderQueueIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_queue").Error)
	suite.queue = queuerepo.NewGormOrderQueue(suite.db)
}

func (suite *OrderQueueIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueueIntegrationTestSuite) TestEnqueueDequeue_RoundTrip() {
	ctx := context.Background()
	deadline := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)

	original, err := order.NewOrder(9001, "113-9001", "key-9001", "Amazon",
		order.Customer{
			ID:       42,
			Username: "jdoe",
			Email:    "jdoe@example.com",
			ShipTo: order.Address{
				Name: "J Doe", Street1: "10 Main St", Street2: "Apt 4",
				City: "Columbus", State: "OH", PostalCode: "43004",
				Country: "US", Phone: "614-555-0100", Residential: true,
			},
		},
		[]order.Item{
			{SKU: "MGLMP001", Name: "Garden Lamp", Quantity: 2,
				UnitPrice: decimal.NewFromFloat(34.99), ProductID: 7},
			{SKU: "SOLTR001", Name: "Solar Torch", Quantity: 1,
				UnitPrice: decimal.NewFromFloat(24.99), ProductID: 8},
		},
		&order.Shipment{
			Confirmation:     "delivery",
			RequestedService: "Standard Shipping",
			AdvancedOptions:  map[string]string{"source": "amazon"},
		},
		&deadline, []int{55476})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.queue.Enqueue(ctx, original))

	restored, err := suite.queue.Dequeue(ctx)
	suite.Require().NoError(err)

	suite.Equal(original.ID(), restored.ID())
	suite.Equal(original.Number(), restored.Number())
	suite.Equal(original.Key(), restored.Key())
	suite.Equal(original.StoreName(), restored.StoreName())
	suite.Equal(original.Customer(), restored.Customer())
	suite.Require().Len(restored.Items(), 2)
	suite.Equal("MGLMP001", restored.Items()[0].SKU)
	suite.True(original.Items()[0].UnitPrice.Equal(restored.Items()[0].UnitPrice))
	suite.Equal("delivery", restored.Shipment().Confirmation)
	suite.Equal("Standard Shipping", restored.Shipment().RequestedService)
	suite.Equal(map[string]string{"source": "amazon"}, restored.Shipment().AdvancedOptions)
	suite.Nil(restored.Shipment().Dimensions)
	suite.Nil(restored.Shipment().Weight)
	suite.Require().NotNil(restored.DeliverBy())
	suite.True(deadline.Equal(*restored.DeliverBy()))
	suite.Equal([]int{55476}, restored.TagIDs())
	suite.Equal(order.Setup, restored.Status())
}

func (suite *OrderQueueIntegrationTestSuite) TestDequeue_ReturnsOldestFirst() {
	ctx := context.Background()

	first := suite.createTestOrder(9010, "113-9010")
	second := suite.createTestOrder(9011, "113-9011")

	suite.Require().NoError(suite.queue.Enqueue(ctx, first))
	suite.Require().NoError(suite.queue.Enqueue(ctx, second))

	dequeued, err := suite.queue.Dequeue(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), dequeued.ID())

	dequeued, err = suite.queue.Dequeue(ctx)
	suite.Require().NoError(err)
	suite.Equal(second.ID(), dequeued.ID())
}

func (suite *OrderQueueIntegrationTestSuite) TestEnqueue_SameOrderReplacesSnapshot() {
	ctx := context.Background()

	stale := suite.createTestOrder(9020, "113-9020")
	suite.Require().NoError(suite.queue.Enqueue(ctx, stale))

	updated, err := order.NewOrder(9020, "113-9020", "key-9020", "Amazon", order.Customer{},
		[]order.Item{{SKU: "SOLTR001", Name: "Solar Torch", Quantity: 3,
			UnitPrice: decimal.NewFromFloat(24.99), ProductID: 8}},
		&order.Shipment{AdvancedOptions: map[string]string{}}, nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.queue.Enqueue(ctx, updated))

	suite.assertQueueLength(1)

	dequeued, err := suite.queue.Dequeue(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(dequeued.Items(), 1)
	suite.Equal(3, dequeued.Items()[0].Quantity)
}

func (suite *OrderQueueIntegrationTestSuite) TestDequeue_EmptyQueue_ReturnsNotFoundError() {
	dequeued, err := suite.queue.Dequeue(context.Background())

	suite.Nil(dequeued)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderQueueIntegrationTestSuite) TestDequeue_RemovesTheRow() {
	ctx := context.Background()

	suite.Require().NoError(suite.queue.Enqueue(ctx, suite.createTestOrder(9030, "113-9030")))
	suite.assertQueueLength(1)

	_, err := suite.queue.Dequeue(ctx)
	suite.Require().NoError(err)
	suite.assertQueueLength(0)
}

// createTestOrder creates a minimal queueable order.
func (suite *OrderQueueIntegrationTestSuite) createTestOrder(id int64, number string) *order.Order {
	testOrder, err := order.NewOrder(id, number, number+"-key", "Amazon", order.Customer{},
		[]order.Item{{SKU: "SOLTR001", Name: "Solar Torch", Quantity: 1,
			UnitPrice: decimal.NewFromFloat(24.99), ProductID: 8}},
		&order.Shipment{AdvancedOptions: map[string]string{}}, nil, nil)
	suite.Require().NoError(err)
	return testOrder
}

// assertQueueLength verifies the number of queued orders.
func (suite *OrderQueueIntegrationTestSuite) assertQueueLength(expected int) {
	var count int64
	err := suite.db.Model(&queuerepo.QueuedOrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderQueueIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueueIntegrationTestSuite))
}
