package mocks

import (
	"context"

	"district/internal/content"
	"github.com/stretchr/testify/mock"
)

type MockGlobalService struct {
	mock.Mock
}

func (m *MockGlobalService) Get(ctx context.Context, slug string) (content.Node, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(content.Node), args.Error(1)
}

func (m *MockGlobalService) Exists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockGlobalService) Update(ctx context.Context, slug string, data content.Node) (content.Node, error) {
	args := m.Called(ctx, slug, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(content.Node), args.Error(1)
}
