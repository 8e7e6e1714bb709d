package payment

import (
	"context"
	"testing"
	"time"

	"letsgo-store/internal/model"
	"letsgo-store/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Search(ctx context.Context, keyword string, limit int) ([]model.Product, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	args := m.Called(ctx, id, quantity)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) BulkInsert(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCompleted(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testPendingOrder() *model.PendingOrder {
	return &model.PendingOrder{
		OrderID:       "order_abc",
		Amount:        1780000,
		OrderName:     "모던 패브릭 소파 2개",
		CustomerID:    "user-1",
		CustomerName:  "김민수",
		CustomerEmail: "kim@example.com",
		Items: []model.PendingOrderItem{
			{ID: "prod-sofa", Name: "모던 패브릭 소파", Price: 890000, Quantity: 2},
		},
		SavedAt: time.Now(),
	}
}

func newTestReconciler(
	sessions session.Store,
	customers *MockCustomerRepository,
	orders *MockOrderRepository,
	products *MockProductRepository,
	publisher *MockPublisher,
) *Reconciler {
	return NewReconciler(sessions, customers, orders, products, publisher, zerolog.Nop())
}

func TestReconciler_Reconcile_MissingSnapshot(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	orders := new(MockOrderRepository)

	r := newTestReconciler(sessions, new(MockCustomerRepository), orders, new(MockProductRepository), new(MockPublisher))

	_, err := r.Reconcile(ctx, "sess-1", "pk_123")
	assert.Equal(t, model.ErrCodeMissingContext, model.ErrorCode(err))
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestReconciler_Reconcile_MissingPaymentKey(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SavePendingOrder(ctx, "sess-1", testPendingOrder()))
	orders := new(MockOrderRepository)

	r := newTestReconciler(sessions, new(MockCustomerRepository), orders, new(MockProductRepository), new(MockPublisher))

	_, err := r.Reconcile(ctx, "sess-1", "")
	assert.Equal(t, model.ErrCodeMissingToken, model.ErrorCode(err))
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)

	// The snapshot survives a rejected attempt.
	pending, err := sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.NotNil(t, pending)
}

func TestReconciler_Reconcile_NoIdentityAnywhere(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	pending := testPendingOrder()
	pending.CustomerID = ""
	require.NoError(t, sessions.SavePendingOrder(ctx, "sess-1", pending))

	r := newTestReconciler(sessions, new(MockCustomerRepository), new(MockOrderRepository), new(MockProductRepository), new(MockPublisher))

	_, err := r.Reconcile(ctx, "sess-1", "pk_123")
	assert.Equal(t, model.ErrCodeUnauthenticated, model.ErrorCode(err))
}

func TestReconciler_Reconcile_Success(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	customers := new(MockCustomerRepository)
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	publisher := new(MockPublisher)

	require.NoError(t, sessions.SavePendingOrder(ctx, "sess-1", testPendingOrder()))
	require.NoError(t, sessions.SaveCart(ctx, "sess-1", []model.CartItem{{ProductID: "prod-sofa", Quantity: 2}}))
	require.NoError(t, sessions.SaveIdentity(ctx, "sess-1", &model.Identity{
		ID:    "user-1",
		Email: "kim@example.com",
		Name:  "김민수",
	}))

	customers.On("GetByEmail", mock.Anything, "kim@example.com").Return(&model.Customer{
		ID:    "cust-1",
		Name:  "김민수",
		Email: "kim@example.com",
	}, nil)
	orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *model.Order) bool {
		return o.Status == model.OrderStatusPaid &&
			o.PaymentID == "pk_123" &&
			o.PaymentMethod == "카드" &&
			o.TotalAmount == 1780000 &&
			o.CustomerID != nil && *o.CustomerID == "cust-1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Order).ID = "db-order-1"
	}).Return(nil)
	orders.On("CreateOrderItems", mock.Anything, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].OrderID == "db-order-1" &&
			items[0].Subtotal == 1780000
	})).Return(nil)
	products.On("DecrementStock", mock.Anything, "prod-sofa", 2).Return(3, nil)
	publisher.On("PublishOrderCompleted", mock.Anything, mock.Anything).Return(nil)

	r := newTestReconciler(sessions, customers, orders, products, publisher)

	order, err := r.Reconcile(ctx, "sess-1", "pk_123")
	require.NoError(t, err)
	assert.Equal(t, "db-order-1", order.ID)

	// Cart and snapshot are gone after a successful reconciliation.
	cart, err := sessions.Cart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, cart)
	pending, err := sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, pending)

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReconciler_Reconcile_ItemsFailureKeepsOrderAndSnapshot(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	customers := new(MockCustomerRepository)
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)

	require.NoError(t, sessions.SavePendingOrder(ctx, "sess-1", testPendingOrder()))

	customers.On("GetByEmail", mock.Anything, "kim@example.com").Return(nil, nil)
	customers.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	orders.On("CreateOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Order).ID = "db-order-1"
	}).Return(nil)
	orders.On("CreateOrderItems", mock.Anything, mock.Anything).Return(assert.AnError)

	r := newTestReconciler(sessions, customers, orders, products, new(MockPublisher))

	_, err := r.Reconcile(ctx, "sess-1", "pk_123")
	assert.Equal(t, model.ErrCodeOrderItemsInsert, model.ErrorCode(err))

	// No stock mutation after the failure; snapshot kept for manual replay.
	products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	pending, err := sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.NotNil(t, pending)
}

func TestReconciler_Reconcile_StockFailuresDoNotAbort(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	customers := new(MockCustomerRepository)
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	publisher := new(MockPublisher)

	pending := testPendingOrder()
	pending.Items = append(pending.Items, model.PendingOrderItem{
		ID: "prod-chair", Name: "원목 의자", Price: 120000, Quantity: 1,
	})
	require.NoError(t, sessions.SavePendingOrder(ctx, "sess-1", pending))

	customers.On("GetByEmail", mock.Anything, "kim@example.com").Return(nil, nil)
	customers.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	orders.On("CreateOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Order).ID = "db-order-1"
	}).Return(nil)
	orders.On("CreateOrderItems", mock.Anything, mock.Anything).Return(nil)
	products.On("DecrementStock", mock.Anything, "prod-sofa", 2).Return(0, assert.AnError)
	products.On("DecrementStock", mock.Anything, "prod-chair", 1).Return(4, nil)
	publisher.On("PublishOrderCompleted", mock.Anything, mock.Anything).Return(nil)

	r := newTestReconciler(sessions, customers, orders, products, publisher)

	order, err := r.Reconcile(ctx, "sess-1", "pk_123")
	require.NoError(t, err)
	assert.Equal(t, "db-order-1", order.ID)

	products.AssertExpectations(t)
}
