package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCheckoutService struct {
	mock.Mock
}

// NewMockCheckoutService registers AssertExpectations on cleanup.
func NewMockCheckoutService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheckoutService {
	m := &MockCheckoutService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCheckoutService) Start(ctx context.Context, customerID uuid.UUID) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) Get(ctx context.Context, customerID uuid.UUID) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) SubmitAddress(ctx context.Context, customerID uuid.UUID, address models.ShippingAddress) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID, address)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) SelectShipping(ctx context.Context, customerID uuid.UUID, serviceID string) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID, serviceID)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) Back(ctx context.Context, customerID uuid.UUID) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) SubmitPayment(ctx context.Context, customerID uuid.UUID, req *models.SubmitPaymentRequest) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID, req)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) HandleReturn(ctx context.Context, customerID uuid.UUID, returnReq checkout.ReturnRequest) (*checkout.Session, error) {
	ret := m.Called(ctx, customerID, returnReq)

	var r0 *checkout.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(*checkout.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) RefreshPayment(ctx context.Context, customerID uuid.UUID) (*models.PaymentStatusResponse, error) {
	ret := m.Called(ctx, customerID)

	var r0 *models.PaymentStatusResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.PaymentStatusResponse)
	}

	r1 := ret.Error(1)

	return r0, r1
}

func (m *MockCheckoutService) Close(ctx context.Context, customerID uuid.UUID) error {
	ret := m.Called(ctx, customerID)

	r0 := ret.Error(0)

	return r0
}

func (m *MockCheckoutService) Publish(ctx context.Context, event models.PaymentEvent) error {
	ret := m.Called(ctx, event)

	r0 := ret.Error(0)

	return r0
}
