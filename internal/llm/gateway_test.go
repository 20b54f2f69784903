package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type mockBackend struct {
	mock.Mock
	name string
}

func newMockBackend(t *testing.T, name string) *mockBackend {
	m := &mockBackend{name: name}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockBackend) Name() string  { return m.name }
func (m *mockBackend) Model() string { return m.name + "-model" }

func (m *mockBackend) Generate(ctx context.Context, prompt string, params GenerationParams) (string, UsageInfo, error) {
	args := m.Called(ctx, prompt, params)
	if fn, ok := args.Get(0).(func(context.Context) (string, error)); ok {
		text, err := fn(ctx)
		return text, UsageInfo{}, err
	}
	return args.String(0), args.Get(1).(UsageInfo), args.Error(2)
}

type fixedCounter int

func (c fixedCounter) Count(string, string) int { return int(c) }

const fallbackText = `{"escolhas":["Attack","Defend","Use Item"],"narrativa":[]}`

func TestGateway_FirstSuccessWins(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a := newMockBackend(t, "a")
	b := newMockBackend(t, "b")
	c := newMockBackend(t, "c")
	a.On("Generate", mock.Anything, "prompt", mock.Anything).Return("", UsageInfo{}, errors.New("boom")).Once()
	b.On("Generate", mock.Anything, "prompt", mock.Anything).Return(`{"narrativa":["ok"]}`, UsageInfo{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5}, nil).Once()

	g := NewGateway([]Link{{Backend: a}, {Backend: b}, {Backend: c}}, fallbackText, zap.NewNop())
	gen := g.Generate(context.Background(), "prompt", 100)

	assert.Equal(t, "b", gen.Backend)
	assert.Equal(t, `{"narrativa":["ok"]}`, gen.Text)
	assert.Equal(t, 5, gen.Usage.TotalTokens)
	assert.False(t, gen.Fallback)
	c.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_AllFailReturnsStaticFallback(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a := newMockBackend(t, "a")
	b := newMockBackend(t, "b")
	a.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", UsageInfo{}, errors.New("down")).Once()
	b.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("   ", UsageInfo{}, nil).Once()

	before := testutil.ToFloat64(fallbackTotal)
	emptyBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("b", "b-model", statusEmpty))
	g := NewGateway([]Link{{Backend: a}, {Backend: b}}, fallbackText, zap.NewNop())
	gen := g.Generate(context.Background(), "prompt", 100)

	assert.True(t, gen.Fallback)
	assert.Equal(t, StaticName, gen.Backend)
	assert.Equal(t, fallbackText, gen.Text)
	assert.Equal(t, before+1, testutil.ToFloat64(fallbackTotal))
	assert.Equal(t, emptyBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("b", "b-model", statusEmpty)))
}

func TestGateway_EmptyChain(t *testing.T) {
	g := NewGateway(nil, fallbackText, zap.NewNop())
	gen := g.Generate(context.Background(), "prompt", 0)
	assert.True(t, gen.Fallback)
	assert.Empty(t, g.Backends())
}

func TestGateway_TimeoutMovesToNextBackend(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	slow := newMockBackend(t, "slow")
	fast := newMockBackend(t, "fast")
	slow.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}, nil, nil).Once()
	fast.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("{}", UsageInfo{}, nil).Once()

	timeoutsBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("slow", "slow-model", statusTimeout))
	g := NewGateway([]Link{{Backend: slow, Timeout: 20 * time.Millisecond}, {Backend: fast}}, fallbackText, zap.NewNop())
	gen := g.Generate(context.Background(), "prompt", 0)

	assert.Equal(t, "fast", gen.Backend)
	assert.Equal(t, timeoutsBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("slow", "slow-model", statusTimeout)))
}

func TestGateway_CancelledContextSkipsChain(t *testing.T) {
	a := newMockBackend(t, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGateway([]Link{{Backend: a}}, fallbackText, zap.NewNop())
	gen := g.Generate(ctx, "prompt", 0)

	assert.True(t, gen.Fallback)
	a.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_PassesParamsAndEstimatesTokens(t *testing.T) {
	a := newMockBackend(t, "a")
	a.On("Generate", mock.Anything, "prompt", mock.MatchedBy(func(p GenerationParams) bool {
		return p.Temperature != nil && *p.Temperature == 0.5 && p.MaxTokens != nil && *p.MaxTokens == 800
	})).Return("{}", UsageInfo{CompletionTokens: 4}, nil).Once()

	g := NewGateway([]Link{{Backend: a}}, fallbackText, zap.NewNop(),
		WithTemperature(0.5), WithTokenCounter(fixedCounter(11)))
	gen := g.Generate(context.Background(), "prompt", 800)

	require.False(t, gen.Fallback)
	assert.Equal(t, 11, gen.Usage.PromptTokens)
	assert.Equal(t, 15, gen.Usage.TotalTokens)
}

func TestNewGateway_DefaultTimeoutAndNilBackends(t *testing.T) {
	a := newMockBackend(t, "a")
	g := NewGateway([]Link{{Backend: nil}, {Backend: a}}, fallbackText, zap.NewNop())

	require.Len(t, g.chain, 1)
	assert.Equal(t, DefaultTimeout, g.chain[0].Timeout)
	assert.Equal(t, []string{"a"}, g.Backends())
}
