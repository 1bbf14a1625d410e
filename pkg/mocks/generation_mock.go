package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of the generation capability.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, contextText string) (string, error) {
	args := m.Called(ctx, prompt, contextText)

	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Embed(ctx context.Context, text string) ([]float64, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockGenerator) Name() string {
	return "mock"
}

// MockContextProvider is a mock implementation of nodes.ContextProvider.
type MockContextProvider struct {
	mock.Mock
}

func (m *MockContextProvider) RelevantContext(ctx context.Context, query string, limit int) string {
	args := m.Called(ctx, query, limit)

	return args.String(0)
}

func (m *MockContextProvider) RecordInteraction(ctx context.Context, content string, metadata map[string]string) error {
	args := m.Called(ctx, content, metadata)

	return args.Error(0)
}
