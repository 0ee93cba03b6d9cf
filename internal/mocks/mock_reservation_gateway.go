package mocks

import (
	"context"

	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationGateway struct {
	mock.Mock
}

func (m *MockReservationGateway) CreateReservation(ctx context.Context, cred domain.Credential, draft domain.ReservationDraft) (*domain.Reservation, error) {
	args := m.Called(ctx, cred, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationGateway) ListReservations(ctx context.Context, cred domain.Credential) ([]domain.Reservation, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationGateway) GetReservation(ctx context.Context, cred domain.Credential, id int) (*domain.Reservation, error) {
	args := m.Called(ctx, cred, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
