package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

// NewMockCartRepository registers AssertExpectations on cleanup.
func NewMockCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	ret := m.Called(ctx, cart)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCartRepository) GetCartByCustomerID(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	ret := m.Called(ctx, customerID)

	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	ret := m.Called(ctx, cart)

	r0 := ret.Error(0)

	return r0
}

type MockProductRepository struct {
	mock.Mock
}

// NewMockProductRepository registers AssertExpectations on cleanup.
func NewMockProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := m.Called(ctx, product)

	r0 := ret.Error(0)

	return r0
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	ret := m.Called(ctx, product)

	r0 := ret.Error(0)

	return r0
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	ret := m.Called(ctx, filter)

	var r0 []*models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	ret := m.Called(ctx, id, quantity)

	r0 := ret.Error(0)

	return r0
}

type MockCatalogRepository struct {
	mock.Mock
}

// NewMockCatalogRepository registers AssertExpectations on cleanup.
func NewMockCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogRepository {
	m := &MockCatalogRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	ret := m.Called(ctx, category)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCatalogRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	ret := m.Called(ctx, category)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCatalogRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Category
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	ret := m.Called(ctx)

	var r0 []*models.Category
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCatalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	ret := m.Called(ctx, brand)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCatalogRepository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	ret := m.Called(ctx, brand)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCatalogRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Brand
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Brand)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogRepository) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	ret := m.Called(ctx)

	var r0 []*models.Brand
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Brand)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

type MockOrderRepository struct {
	mock.Mock
}

// NewMockOrderRepository registers AssertExpectations on cleanup.
func NewMockOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	ret := m.Called(ctx, order)

	r0 := ret.Error(0)

	return r0
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderRepository) GetOrderByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*models.Order, error) {
	ret := m.Called(ctx, gatewayPaymentID)

	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	ret := m.Called(ctx, filter)

	var r0 []models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Order)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	ret := m.Called(ctx, id, status)

	r0 := ret.Error(0)

	return r0
}

func (m *MockOrderRepository) UpdatePaymentState(ctx context.Context, id uuid.UUID, paymentStatus models.PaymentStatus, orderStatus models.OrderStatus, details models.PaymentDetails) error {
	ret := m.Called(ctx, id, paymentStatus, orderStatus, details)

	r0 := ret.Error(0)

	return r0
}

func (m *MockOrderRepository) GetStats(ctx context.Context) (*models.OrderStats, error) {
	ret := m.Called(ctx)

	var r0 *models.OrderStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.OrderStats)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockPaymentRepository struct {
	mock.Mock
}

// NewMockPaymentRepository registers AssertExpectations on cleanup.
func NewMockPaymentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	ret := m.Called(ctx, payment)

	r0 := ret.Error(0)

	return r0
}

func (m *MockPaymentRepository) GetPaymentByGatewayID(ctx context.Context, provider string, gatewayPaymentID string) (*models.Payment, error) {
	ret := m.Called(ctx, provider, gatewayPaymentID)

	var r0 *models.Payment
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Payment)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockPaymentRepository) GetLatestPaymentForOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	ret := m.Called(ctx, orderID)

	var r0 *models.Payment
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Payment)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus, providerStatus string) error {
	ret := m.Called(ctx, id, status, providerStatus)

	r0 := ret.Error(0)

	return r0
}

func (m *MockPaymentRepository) ListPaymentsOfCustomer(ctx context.Context, customerID uuid.UUID, page int, size int) ([]*models.Payment, int, error) {
	ret := m.Called(ctx, customerID, page, size)

	var r0 []*models.Payment
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Payment)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

type MockMessageRepository struct {
	mock.Mock
}

// NewMockMessageRepository registers AssertExpectations on cleanup.
func NewMockMessageRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageRepository {
	m := &MockMessageRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMessageRepository) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	ret := m.Called(ctx, message)

	r0 := ret.Error(0)

	return r0
}

func (m *MockMessageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	ret := m.Called(ctx, id)

	var r0 *models.ContactMessage
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.ContactMessage)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockMessageRepository) ListMessages(ctx context.Context, filter models.MessageFilter) ([]*models.ContactMessage, int, error) {
	ret := m.Called(ctx, filter)

	var r0 []*models.ContactMessage
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.ContactMessage)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	ret := m.Called(ctx, id, read)

	r0 := ret.Error(0)

	return r0
}

func (m *MockMessageRepository) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

type MockNotificationRepository struct {
	mock.Mock
}

// NewMockNotificationRepository registers AssertExpectations on cleanup.
func NewMockNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	ret := m.Called(ctx, notification)

	r0 := ret.Error(0)

	return r0
}

func (m *MockNotificationRepository) GetNotificationById(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Notification
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Notification)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockNotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	ret := m.Called(ctx, id, status, errorMsg)

	r0 := ret.Error(0)

	return r0
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error) {
	ret := m.Called(ctx, page, size)

	var r0 []*models.Notification
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Notification)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository registers AssertExpectations on cleanup.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)

	r0 := ret.Error(0)

	return r0
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := m.Called(ctx, email)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockUserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := m.Called(ctx, id)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockRateLimitRepository struct {
	mock.Mock
}

// NewMockRateLimitRepository registers AssertExpectations on cleanup.
func NewMockRateLimitRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateLimitRepository {
	m := &MockRateLimitRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	ret := m.Called(ctx, email)

	r0 := ret.Get(0).(bool)

	r1 := ret.Get(1).(int)

	r2 := ret.Get(2).(int)

	r3 := ret.Error(3)

	return r0, r1, r2, r3
}
