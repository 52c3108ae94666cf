package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGlobalCache struct {
	mock.Mock
}

func (m *MockGlobalCache) Get(ctx context.Context, slug string) (map[string]any, bool, error) {
	args := m.Called(ctx, slug)
	data, _ := args.Get(0).(map[string]any)
	return data, args.Bool(1), args.Error(2)
}

func (m *MockGlobalCache) Set(ctx context.Context, slug string, data map[string]any) error {
	args := m.Called(ctx, slug, data)
	return args.Error(0)
}

func (m *MockGlobalCache) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}
