package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"flashgen/internal/cache"
	"flashgen/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockModelInvoker struct {
	mock.Mock
}

func (m *MockModelInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

var _ domain.ModelInvoker = (*MockModelInvoker)(nil)

func cacheKeyFor(model, system, user string) string {
	return cache.GenerateCacheKey("llm", "response", cache.HashParts(model, system, user))
}

func TestCachedInvoker_MissInvokesAndStores(t *testing.T) {
	ctx := context.Background()
	client, redisMock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	next := new(MockModelInvoker)
	next.On("Invoke", ctx, "sys", "usr").Return(`{"flashcards": []}`, nil).Once()

	key := cacheKeyFor("gpt-3.5-turbo", "sys", "usr")
	redisMock.ExpectGet(key).RedisNil()
	redisMock.ExpectSet(key, `{"flashcards": []}`, time.Hour).SetVal("OK")

	invoker := NewCachedInvoker(next, cacheAdapter, "gpt-3.5-turbo", time.Hour, zap.NewNop())
	raw, err := invoker.Invoke(ctx, "sys", "usr")

	require.NoError(t, err)
	assert.Equal(t, `{"flashcards": []}`, raw)
	next.AssertExpectations(t)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedInvoker_HitSkipsInvocation(t *testing.T) {
	ctx := context.Background()
	client, redisMock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	next := new(MockModelInvoker)

	key := cacheKeyFor("gpt-3.5-turbo", "sys", "usr")
	redisMock.ExpectGet(key).SetVal("cached response")

	invoker := NewCachedInvoker(next, cacheAdapter, "gpt-3.5-turbo", time.Hour, zap.NewNop())
	raw, err := invoker.Invoke(ctx, "sys", "usr")

	require.NoError(t, err)
	assert.Equal(t, "cached response", raw)
	next.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedInvoker_InvocationErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	client, redisMock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	invokeErr := domain.NewInvocationError(errors.New("rate limited"))
	next := new(MockModelInvoker)
	next.On("Invoke", ctx, "sys", "usr").Return("", invokeErr).Once()

	key := cacheKeyFor("gpt-3.5-turbo", "sys", "usr")
	redisMock.ExpectGet(key).RedisNil()

	invoker := NewCachedInvoker(next, cacheAdapter, "gpt-3.5-turbo", time.Hour, zap.NewNop())
	_, err := invoker.Invoke(ctx, "sys", "usr")

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInvocation))
	next.AssertExpectations(t)
}
