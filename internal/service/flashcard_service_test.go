package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/parser"

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

// userPromptContaining matches the user prompt built for a given chunk.
func userPromptContaining(chunkText string) interface{} {
	return mock.MatchedBy(func(userPrompt string) bool {
		return strings.Contains(userPrompt, chunkText)
	})
}

func cardsPayload(topic string, n int) string {
	var cards []string
	for i := 0; i < n; i++ {
		cards = append(cards, fmt.Sprintf(
			`{"question": "%s question %d", "answer": "%s answer %d", "difficulty": "Medium", "topic": "%s"}`,
			topic, i+1, topic, i+1, topic))
	}
	return fmt.Sprintf(`{"flashcards": [%s]}`, strings.Join(cards, ","))
}

func newTestService(invoker domain.ModelInvoker, cfg config.PipelineConfig) domain.FlashcardService {
	return NewFlashcardService(invoker, parser.New(zap.NewNop()), cfg, zap.NewNop())
}

// threeChunkContent splits into exactly "alpha", "beta", "gamma" with a
// chunk size of 7.
const threeChunkContent = "alpha\nbeta\ngamma"

func TestGenerate_FailedChunkContributesNothing(t *testing.T) {
	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("alpha")).
		Return(cardsPayload("First", 2), nil)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("beta")).
		Return("", domain.NewInvocationError(errors.New("service unavailable")))
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("gamma")).
		Return(cardsPayload("Third", 2), nil)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 7, CardsPerChunk: 2, MaxParallel: 1})
	cards, err := svc.Generate(context.Background(), threeChunkContent, "General")

	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, "First question 1", cards[0].Question)
	assert.Equal(t, "First question 2", cards[1].Question)
	assert.Equal(t, "Third question 1", cards[2].Question)
	assert.Equal(t, "Third question 2", cards[3].Question)
	invoker.AssertNumberOfCalls(t, "Invoke", 3)
}

func TestGenerate_MalformedResponseSkipsChunk(t *testing.T) {
	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("alpha")).
		Return("the model rambled instead of returning JSON", nil)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("beta")).
		Return(cardsPayload("Kept", 1), nil)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("gamma")).
		Return(cardsPayload("AlsoKept", 1), nil)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 7, CardsPerChunk: 1, MaxParallel: 1})
	cards, err := svc.Generate(context.Background(), threeChunkContent, "General")

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Kept", cards[0].Topic)
	assert.Equal(t, "AlsoKept", cards[1].Topic)
}

func TestGenerate_AllChunksFailingYieldsEmptyResult(t *testing.T) {
	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.NewInvocationError(errors.New("down")))

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 7, CardsPerChunk: 2, MaxParallel: 1})
	_, err := svc.Generate(context.Background(), threeChunkContent, "General")

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeEmptyResult))
}

func TestGenerate_EmptyContentYieldsEmptyResult(t *testing.T) {
	invoker := new(MockModelInvoker)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 3000, CardsPerChunk: 5, MaxParallel: 1})
	_, err := svc.Generate(context.Background(), "", "General")

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeEmptyResult))
	invoker.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateWithProgress_MonotonicAndCompletes(t *testing.T) {
	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(cardsPayload("Topic", 1), nil)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 7, CardsPerChunk: 1, MaxParallel: 1})

	type step struct{ completed, total int }
	var steps []step
	_, err := svc.GenerateWithProgress(context.Background(), threeChunkContent, "General",
		func(completed, total int) {
			steps = append(steps, step{completed, total})
		})

	require.NoError(t, err)
	require.Len(t, steps, 3)
	for i, s := range steps {
		assert.Equal(t, i+1, s.completed)
		assert.Equal(t, 3, s.total)
	}
	assert.Equal(t, step{3, 3}, steps[len(steps)-1])
}

func TestGenerate_ParallelPreservesChunkOrder(t *testing.T) {
	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("alpha")).
		Return(cardsPayload("First", 2), nil)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("beta")).
		Return(cardsPayload("Second", 2), nil)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("gamma")).
		Return(cardsPayload("Third", 2), nil)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 7, CardsPerChunk: 2, MaxParallel: 3})
	cards, err := svc.Generate(context.Background(), threeChunkContent, "General")

	require.NoError(t, err)
	require.Len(t, cards, 6)
	assert.Equal(t, []string{"First", "First", "Second", "Second", "Third", "Third"},
		[]string{cards[0].Topic, cards[1].Topic, cards[2].Topic, cards[3].Topic, cards[4].Topic, cards[5].Topic})
}

func TestGenerate_SevenThousandCharsEndToEnd(t *testing.T) {
	var sb strings.Builder
	for sb.Len() < 7000 {
		sb.WriteString("a line of study material for the flashcard pipeline\n")
	}
	content := sb.String()[:7000]

	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(cardsPayload("Material", 2), nil)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 3000, CardsPerChunk: 2, MaxParallel: 1})
	cards, err := svc.Generate(context.Background(), content, "General")

	require.NoError(t, err)
	assert.Len(t, cards, 6)
	invoker.AssertNumberOfCalls(t, "Invoke", 3)

	groups := domain.GroupByTopic(cards)
	assert.Equal(t, []string{"Material"}, groups.Order)
}

func TestGenerate_CancelledContextStopsIssuingRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	invoker := new(MockModelInvoker)
	invoker.On("Invoke", mock.Anything, mock.Anything, userPromptContaining("alpha")).
		Run(func(args mock.Arguments) { cancel() }).
		Return(cardsPayload("First", 1), nil)

	svc := newTestService(invoker, config.PipelineConfig{ChunkSize: 7, CardsPerChunk: 1, MaxParallel: 1})
	cards, err := svc.Generate(ctx, threeChunkContent, "General")

	require.NoError(t, err)
	assert.Len(t, cards, 1)
	invoker.AssertNumberOfCalls(t, "Invoke", 1)
}
