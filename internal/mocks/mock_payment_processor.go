package mocks

import (
	"context"

	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) Charge(ctx context.Context, details domain.PaymentDetails, quote domain.Quote) error {
	args := m.Called(ctx, details, quote)
	return args.Error(0)
}
