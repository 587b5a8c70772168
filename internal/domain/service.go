package domain

import "context"

// ModelInvoker defines the interface (port) for a single chat-style
// completion call against an LLM service. Implementations isolate
// network and service failures behind a CodeInvocation domain error.
type ModelInvoker interface {
	Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProgressFunc reports pipeline progress after each processed chunk.
// completed increases monotonically and reaches total exactly once.
type ProgressFunc func(completed, total int)

// FlashcardService defines the interface for the generation pipeline:
// chunk the content, invoke the model per chunk, parse and validate the
// responses, and merge the results in chunk order.
type FlashcardService interface {
	// Generate runs the full pipeline over content for the given subject.
	// A chunk whose model call or response parse fails contributes zero
	// flashcards; the run itself only errors when no flashcards were
	// produced at all (CodeEmptyResult).
	Generate(ctx context.Context, content, subject string) ([]Flashcard, error)

	// GenerateWithProgress behaves like Generate and additionally reports
	// per-chunk progress through the callback. progress may be nil.
	GenerateWithProgress(ctx context.Context, content, subject string, progress ProgressFunc) ([]Flashcard, error)
}
