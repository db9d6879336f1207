package mocks

import (
	"context"

	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/stretchr/testify/mock"
)

// JournalRepository is a mock for journal.Repository.
type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) Append(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *JournalRepository) List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]journal.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Generator is a mock for assistant.Generator.
type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, req assistant.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
