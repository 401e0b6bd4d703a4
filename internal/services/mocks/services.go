package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/melhorenvio"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	storestripe "github.com/aaravmahajanofficial/helmet-storefront/pkg/stripe"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/viacep"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

type MockCartService struct {
	mock.Mock
}

// NewMockCartService registers AssertExpectations on cleanup.
func NewMockCartService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartService {
	m := &MockCartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	ret := m.Called(ctx, customerID)

	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	ret := m.Called(ctx, customerID, req)

	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	ret := m.Called(ctx, customerID, req)

	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCartService) RemoveItem(ctx context.Context, customerID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {
	ret := m.Called(ctx, customerID, req)

	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {
	ret := m.Called(ctx, customerID)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCartService) Total(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	ret := m.Called(ctx, customerID)

	var r0 decimal.Decimal
	if v := ret.Get(0); v != nil {
		r0 = v.(decimal.Decimal)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockProductService struct {
	mock.Mock
}

// NewMockProductService registers AssertExpectations on cleanup.
func NewMockProductService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductService {
	m := &MockProductService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	ret := m.Called(ctx, req)

	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	ret := m.Called(ctx, id, req)

	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	ret := m.Called(ctx, filter)

	var r0 []*models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockProductService) GetStorefrontProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockProductService) ListStorefrontProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	ret := m.Called(ctx, filter)

	var r0 []*models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockProductService) RequestDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {
	ret := m.Called(ctx, id)

	var r0 *models.DeleteConfirmation
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.DeleteConfirmation)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockProductService) ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error {
	ret := m.Called(ctx, id, token)

	r0 := ret.Error(0)

	return r0
}

type MockCatalogService struct {
	mock.Mock
}

// NewMockCatalogService registers AssertExpectations on cleanup.
func NewMockCatalogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogService {
	m := &MockCatalogService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	ret := m.Called(ctx)

	var r0 []*models.Category
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	ret := m.Called(ctx, req)

	var r0 *models.Category
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error) {
	ret := m.Called(ctx, id, req)

	var r0 *models.Category
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) RequestCategoryDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {
	ret := m.Called(ctx, id)

	var r0 *models.DeleteConfirmation
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.DeleteConfirmation)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) ConfirmCategoryDelete(ctx context.Context, id uuid.UUID, token string) error {
	ret := m.Called(ctx, id, token)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCatalogService) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	ret := m.Called(ctx)

	var r0 []*models.Brand
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Brand)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error) {
	ret := m.Called(ctx, req)

	var r0 *models.Brand
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Brand)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) UpdateBrand(ctx context.Context, id uuid.UUID, req *models.CreateBrandRequest) (*models.Brand, error) {
	ret := m.Called(ctx, id, req)

	var r0 *models.Brand
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Brand)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) RequestBrandDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {
	ret := m.Called(ctx, id)

	var r0 *models.DeleteConfirmation
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.DeleteConfirmation)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCatalogService) ConfirmBrandDelete(ctx context.Context, id uuid.UUID, token string) error {
	ret := m.Called(ctx, id, token)

	r0 := ret.Error(0)

	return r0
}

type MockMessageService struct {
	mock.Mock
}

// NewMockMessageService registers AssertExpectations on cleanup.
func NewMockMessageService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageService {
	m := &MockMessageService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMessageService) Submit(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	ret := m.Called(ctx, req)

	var r0 *models.ContactMessage
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.ContactMessage)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockMessageService) GetMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	ret := m.Called(ctx, id)

	var r0 *models.ContactMessage
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.ContactMessage)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockMessageService) ListMessages(ctx context.Context, filter models.MessageFilter) ([]*models.ContactMessage, int, error) {
	ret := m.Called(ctx, filter)

	var r0 []*models.ContactMessage
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.ContactMessage)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockMessageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	ret := m.Called(ctx, id, read)

	r0 := ret.Error(0)

	return r0
}

func (m *MockMessageService) RequestDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {
	ret := m.Called(ctx, id)

	var r0 *models.DeleteConfirmation
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.DeleteConfirmation)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockMessageService) ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error {
	ret := m.Called(ctx, id, token)

	r0 := ret.Error(0)

	return r0
}

type MockNotificationService struct {
	mock.Mock
}

// NewMockNotificationService registers AssertExpectations on cleanup.
func NewMockNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	ret := m.Called(ctx, req)

	var r0 *models.NotificationResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.NotificationResponse)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockNotificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Notification
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Notification)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error) {
	ret := m.Called(ctx, page, size)

	var r0 []*models.Notification
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Notification)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockNotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	ret := m.Called(ctx, order)

	r0 := ret.Error(0)

	return r0
}

func (m *MockNotificationService) NotifyContactMessage(ctx context.Context, message *models.ContactMessage) error {
	ret := m.Called(ctx, message)

	r0 := ret.Error(0)

	return r0
}

type MockOrderService struct {
	mock.Mock
}

// NewMockOrderService registers AssertExpectations on cleanup.
func NewMockOrderService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderService {
	m := &MockOrderService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderService) CreateOrder(ctx context.Context, order *models.Order) error {
	ret := m.Called(ctx, order)

	r0 := ret.Error(0)

	return r0
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderService) GetCustomerOrder(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*models.Order, error) {
	ret := m.Called(ctx, customerID, id)

	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderHistoryResponse, error) {
	ret := m.Called(ctx, filter)

	var r0 *models.OrderHistoryResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.OrderHistoryResponse)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page int, size int) (*models.OrderHistoryResponse, error) {
	ret := m.Called(ctx, customerID, page, size)

	var r0 *models.OrderHistoryResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.OrderHistoryResponse)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	ret := m.Called(ctx, id, status)

	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockOrderService) GetStats(ctx context.Context) (*models.OrderStats, error) {
	ret := m.Called(ctx)

	var r0 *models.OrderStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.OrderStats)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockPaymentService struct {
	mock.Mock
}

// NewMockPaymentService registers AssertExpectations on cleanup.
func NewMockPaymentService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, order *models.Order, result *payments.Result) (*models.Payment, error) {
	ret := m.Called(ctx, order, result)

	var r0 *models.Payment
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Payment)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockPaymentService) ApplyStatus(ctx context.Context, orderID uuid.UUID, status models.PaymentStatus, details models.PaymentDetails, source string) (*models.Order, error) {
	ret := m.Called(ctx, orderID, status, details, source)

	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockPaymentService) RefreshStatus(ctx context.Context, orderID uuid.UUID, gatewayPaymentID string, source string) (*models.PaymentStatusResponse, error) {
	ret := m.Called(ctx, orderID, gatewayPaymentID, source)

	var r0 *models.PaymentStatusResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.PaymentStatusResponse)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockPaymentService) GetInstallments(ctx context.Context, amount decimal.Decimal, bin string) ([]models.Installment, error) {
	ret := m.Called(ctx, amount, bin)

	var r0 []models.Installment
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Installment)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockPaymentService) ListCustomerPayments(ctx context.Context, customerID uuid.UUID, page int, size int) ([]*models.Payment, int, error) {
	ret := m.Called(ctx, customerID, page, size)

	var r0 []*models.Payment
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Payment)
	}

	r1 := ret.Get(1).(int)

	r2 := ret.Error(2)

	return r0, r1, r2
}

func (m *MockPaymentService) HandleMercadoPagoNotification(ctx context.Context, notification mercadopago.Notification) error {
	ret := m.Called(ctx, notification)

	r0 := ret.Error(0)

	return r0
}

func (m *MockPaymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	ret := m.Called(ctx, payload, signature)

	r0 := ret.Error(0)

	return r0
}

type MockShippingService struct {
	mock.Mock
}

// NewMockShippingService registers AssertExpectations on cleanup.
func NewMockShippingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockShippingService {
	m := &MockShippingService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockShippingService) Quote(ctx context.Context, postalCode string, weightGrams int) ([]models.ShippingOption, error) {
	ret := m.Called(ctx, postalCode, weightGrams)

	var r0 []models.ShippingOption
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.ShippingOption)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockShippingService) QuoteCart(ctx context.Context, postalCode string, cart *models.Cart) ([]models.ShippingOption, error) {
	ret := m.Called(ctx, postalCode, cart)

	var r0 []models.ShippingOption
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.ShippingOption)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockShippingService) PackageWeight(cart *models.Cart) int {
	ret := m.Called(cart)

	r0 := ret.Get(0).(int)

	return r0
}

type MockAddressService struct {
	mock.Mock
}

// NewMockAddressService registers AssertExpectations on cleanup.
func NewMockAddressService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAddressService {
	m := &MockAddressService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAddressService) Lookup(ctx context.Context, postalCode string) (*models.AddressLookup, error) {
	ret := m.Called(ctx, postalCode)

	var r0 *models.AddressLookup
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.AddressLookup)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockUserService struct {
	mock.Mock
}

// NewMockUserService registers AssertExpectations on cleanup.
func NewMockUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	ret := m.Called(ctx, req)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := m.Called(ctx, req)

	var r0 *models.LoginResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.LoginResponse)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := m.Called(ctx, id)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher registers AssertExpectations on cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event models.PaymentEvent) error {
	ret := m.Called(ctx, event)

	r0 := ret.Error(0)

	return r0
}

type MockRateQuoter struct {
	mock.Mock
}

// NewMockRateQuoter registers AssertExpectations on cleanup.
func NewMockRateQuoter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateQuoter {
	m := &MockRateQuoter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRateQuoter) Calculate(ctx context.Context, req melhorenvio.QuoteRequest) ([]melhorenvio.Service, error) {
	ret := m.Called(ctx, req)

	var r0 []melhorenvio.Service
	if v := ret.Get(0); v != nil {
		r0 = v.([]melhorenvio.Service)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockPostalCodeLookup struct {
	mock.Mock
}

// NewMockPostalCodeLookup registers AssertExpectations on cleanup.
func NewMockPostalCodeLookup(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPostalCodeLookup {
	m := &MockPostalCodeLookup{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPostalCodeLookup) Lookup(ctx context.Context, postalCode string) (*viacep.Address, error) {
	ret := m.Called(ctx, postalCode)

	var r0 *viacep.Address
	if v := ret.Get(0); v != nil {
		r0 = v.(*viacep.Address)
	}

	r1 := ret.Error(1)

	return r0, r1
}

type MockEmailService struct {
	mock.Mock
}

// NewMockEmailService registers AssertExpectations on cleanup.
func NewMockEmailService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEmailService {
	m := &MockEmailService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := m.Called(ctx, req)

	r0 := ret.Error(0)

	return r0
}

type MockStripeClient struct {
	mock.Mock
}

// NewMockStripeClient registers AssertExpectations on cleanup.
func NewMockStripeClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStripeClient {
	m := &MockStripeClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStripeClient) CreateCheckoutSession(ctx context.Context, req storestripe.CheckoutRequest) (*stripe.CheckoutSession, error) {
	ret := m.Called(ctx, req)

	var r0 *stripe.CheckoutSession
	if v := ret.Get(0); v != nil {
		r0 = v.(*stripe.CheckoutSession)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) CreateCardPayment(ctx context.Context, req storestripe.IntentRequest) (*stripe.PaymentIntent, error) {
	ret := m.Called(ctx, req)

	var r0 *stripe.PaymentIntent
	if v := ret.Get(0); v != nil {
		r0 = v.(*stripe.PaymentIntent)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) CreatePixPayment(ctx context.Context, req storestripe.IntentRequest) (*stripe.PaymentIntent, error) {
	ret := m.Called(ctx, req)

	var r0 *stripe.PaymentIntent
	if v := ret.Get(0); v != nil {
		r0 = v.(*stripe.PaymentIntent)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) CreateBoletoPayment(ctx context.Context, req storestripe.IntentRequest) (*stripe.PaymentIntent, error) {
	ret := m.Called(ctx, req)

	var r0 *stripe.PaymentIntent
	if v := ret.Get(0); v != nil {
		r0 = v.(*stripe.PaymentIntent)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	ret := m.Called(ctx, id)

	var r0 *stripe.PaymentIntent
	if v := ret.Get(0); v != nil {
		r0 = v.(*stripe.PaymentIntent)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	ret := m.Called(ctx, id)

	var r0 *stripe.CheckoutSession
	if v := ret.Get(0); v != nil {
		r0 = v.(*stripe.CheckoutSession)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) VerifyWebhookSignature(payload []byte, signature string) (storestripe.Event, error) {
	ret := m.Called(payload, signature)

	var r0 storestripe.Event
	if v := ret.Get(0); v != nil {
		r0 = v.(storestripe.Event)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockStripeClient) Ping(ctx context.Context) error {
	ret := m.Called(ctx)

	r0 := ret.Error(0)

	return r0
}

type MockGateway struct {
	mock.Mock
}

// NewMockGateway registers AssertExpectations on cleanup.
func NewMockGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGateway {
	m := &MockGateway{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGateway) Provider() string {
	ret := m.Called()

	r0 := ret.Get(0).(string)

	return r0
}

func (m *MockGateway) CreatePreference(ctx context.Context, req payments.CheckoutRequest) (*payments.Result, error) {
	ret := m.Called(ctx, req)

	var r0 *payments.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*payments.Result)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockGateway) CreateCardPayment(ctx context.Context, req payments.ChargeRequest) (*payments.Result, error) {
	ret := m.Called(ctx, req)

	var r0 *payments.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*payments.Result)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockGateway) CreatePixPayment(ctx context.Context, req payments.ChargeRequest) (*payments.Result, error) {
	ret := m.Called(ctx, req)

	var r0 *payments.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*payments.Result)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockGateway) CreateBoletoPayment(ctx context.Context, req payments.ChargeRequest) (*payments.Result, error) {
	ret := m.Called(ctx, req)

	var r0 *payments.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*payments.Result)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockGateway) GetInstallments(ctx context.Context, amount decimal.Decimal, bin string) ([]models.Installment, error) {
	ret := m.Called(ctx, amount, bin)

	var r0 []models.Installment
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Installment)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockGateway) GetPaymentStatus(ctx context.Context, gatewayPaymentID string) (*payments.Result, error) {
	ret := m.Called(ctx, gatewayPaymentID)

	var r0 *payments.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*payments.Result)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockGateway) Ping(ctx context.Context) error {
	ret := m.Called(ctx)

	r0 := ret.Error(0)

	return r0
}
