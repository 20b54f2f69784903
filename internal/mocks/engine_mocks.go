package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/llm"
	"rpg-server/internal/models"
)

// MockGenerator is a mock type for the Generator type
type MockGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt, maxOutputTokens
func (_m *MockGenerator) Generate(ctx context.Context, prompt string, maxOutputTokens int) llm.Generation {
	ret := _m.Called(ctx, prompt, maxOutputTokens)
	if rf, ok := ret.Get(0).(func(context.Context, string, int) llm.Generation); ok {
		return rf(ctx, prompt, maxOutputTokens)
	}
	return ret.Get(0).(llm.Generation)
}

// NewMockGenerator creates a MockGenerator bound to t that asserts its expectations on cleanup.
func NewMockGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGenerator {
	m := &MockGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.Generator = (*MockGenerator)(nil)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// PublishEncounterEvent provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishEncounterEvent(ctx context.Context, event models.EncounterEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ interfaces.EventPublisher = (*MockEventPublisher)(nil)

// MockEncounterService is a mock type for the EncounterService type
type MockEncounterService struct {
	mock.Mock
}

// Start provides a mock function with given fields: ctx, in
func (_m *MockEncounterService) Start(ctx context.Context, in models.StartInput) (*models.TurnOutcome, error) {
	ret := _m.Called(ctx, in)
	var r0 *models.TurnOutcome
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TurnOutcome)
	}
	return r0, ret.Error(1)
}

// Turn provides a mock function with given fields: ctx, in
func (_m *MockEncounterService) Turn(ctx context.Context, in models.TurnInput) (*models.TurnOutcome, error) {
	ret := _m.Called(ctx, in)
	var r0 *models.TurnOutcome
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TurnOutcome)
	}
	return r0, ret.Error(1)
}

var _ interfaces.EncounterService = (*MockEncounterService)(nil)
