package mocks

import (
	"context"

	"district/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockGlobalRepository struct {
	mock.Mock
}

func (m *MockGlobalRepository) Find(ctx context.Context, slug string) (*model.Global, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Global), args.Error(1)
}

func (m *MockGlobalRepository) Upsert(ctx context.Context, g *model.Global) (*model.Global, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Global), args.Error(1)
}
