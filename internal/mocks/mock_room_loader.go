package mocks

import (
	"context"

	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRoomLoader struct {
	mock.Mock
}

func (m *MockRoomLoader) GetRoom(ctx context.Context, cred domain.Credential, roomID int) (*domain.Room, error) {
	args := m.Called(ctx, cred, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomLoader) ListRooms(ctx context.Context, cred domain.Credential) ([]domain.Room, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockRoomInvalidator struct {
	mock.Mock
}

func (m *MockRoomInvalidator) Invalidate(ctx context.Context, roomID int) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}
