package service

import (
	"context"
	"sync"
	"time"

	"flashgen/internal/chunker"
	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/parser"
	"flashgen/internal/prompt"
	"flashgen/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// flashcardService implements the domain.FlashcardService interface.
// It owns the per-run accumulation state; chunks themselves share
// nothing, which is what allows the optional parallel mode.
type flashcardService struct {
	invoker domain.ModelInvoker
	parser  *parser.Parser
	cfg     config.PipelineConfig
	logger  *zap.Logger
}

// NewFlashcardService creates the generation pipeline. With
// cfg.MaxParallel > 1 chunks are dispatched concurrently; results are
// always assembled in chunk order either way.
func NewFlashcardService(
	invoker domain.ModelInvoker,
	responseParser *parser.Parser,
	cfg config.PipelineConfig,
	logger *zap.Logger,
) domain.FlashcardService {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 3000
	}
	if cfg.CardsPerChunk < 1 {
		cfg.CardsPerChunk = 5
	}
	return &flashcardService{
		invoker: invoker,
		parser:  responseParser,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *flashcardService) Generate(ctx context.Context, content, subject string) ([]domain.Flashcard, error) {
	return s.GenerateWithProgress(ctx, content, subject, nil)
}

// GenerateWithProgress chunks the content once, then runs
// prompt → invoke → parse per chunk. A chunk failure is neutralized to
// zero flashcards and the run continues; only a run that yields nothing
// at all is reported as an error.
func (s *flashcardService) GenerateWithProgress(
	ctx context.Context,
	content, subject string,
	progress domain.ProgressFunc,
) ([]domain.Flashcard, error) {
	runID := util.NewULID()
	start := time.Now()

	chunks := chunker.Split(content, s.cfg.ChunkSize)
	s.logger.Info("Starting flashcard generation run",
		zap.String("run_id", runID),
		zap.String("subject", subject),
		zap.Int("content_length", len(content)),
		zap.Int("total_chunks", len(chunks)),
	)

	results := make([][]domain.Flashcard, len(chunks))
	if s.cfg.MaxParallel > 1 {
		s.processParallel(ctx, runID, chunks, subject, results, progress)
	} else {
		s.processSequential(ctx, runID, chunks, subject, results, progress)
	}

	var cards []domain.Flashcard
	for _, batch := range results {
		cards = append(cards, batch...)
	}

	s.logger.Info("Flashcard generation run finished",
		zap.String("run_id", runID),
		zap.Int("total_cards", len(cards)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if len(cards) == 0 {
		return nil, domain.NewEmptyResultError()
	}
	return cards, nil
}

func (s *flashcardService) processSequential(
	ctx context.Context,
	runID string,
	chunks []string,
	subject string,
	results [][]domain.Flashcard,
	progress domain.ProgressFunc,
) {
	total := len(chunks)
	for i, chunk := range chunks {
		// Caller cancellation: stop issuing further chunk requests.
		// Completed chunks' results stay final.
		if ctx.Err() != nil {
			s.logger.Warn("Run cancelled, skipping remaining chunks",
				zap.String("run_id", runID),
				zap.Int("completed", i),
				zap.Int("total", total),
			)
			break
		}
		results[i] = s.processChunk(ctx, runID, i, chunk, subject)
		if progress != nil {
			progress(i+1, total)
		}
	}
}

func (s *flashcardService) processParallel(
	ctx context.Context,
	runID string,
	chunks []string,
	subject string,
	results [][]domain.Flashcard,
	progress domain.ProgressFunc,
) {
	var mu sync.Mutex
	completed := 0
	total := len(chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxParallel)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			results[i] = s.processChunk(gctx, runID, i, chunk, subject)
			mu.Lock()
			completed++
			if progress != nil {
				progress(completed, total)
			}
			mu.Unlock()
			// Chunk failures are neutralized inside processChunk, so a
			// single chunk never cancels the group.
			return nil
		})
	}
	_ = g.Wait()
}

// processChunk runs one chunk through the prompt/invoke/parse stages.
// Either failure mode yields zero flashcards for this chunk only.
func (s *flashcardService) processChunk(ctx context.Context, runID string, index int, chunk, subject string) []domain.Flashcard {
	systemPrompt, userPrompt := prompt.Build(chunk, subject, s.cfg.CardsPerChunk)

	raw, err := s.invoker.Invoke(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("Model invocation failed for chunk",
			zap.String("run_id", runID),
			zap.Int("chunk_index", index),
			zap.Error(err),
		)
		return nil
	}

	cards, err := s.parser.Parse(raw)
	if err != nil {
		s.logger.Warn("Failed to parse model response for chunk",
			zap.String("run_id", runID),
			zap.Int("chunk_index", index),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Debug("Chunk produced flashcards",
		zap.String("run_id", runID),
		zap.Int("chunk_index", index),
		zap.Int("card_count", len(cards)),
	)
	return cards
}
