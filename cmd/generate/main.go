// Command generate runs the flashcard pipeline once from the command
// line: read a .pdf or .txt file, generate flashcards for a subject,
// and export them to csv, json, or anki format.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"flashgen/internal/adapter"
	"flashgen/internal/adapter/llm"
	"flashgen/internal/cache"
	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/export"
	"flashgen/internal/extract"
	"flashgen/internal/logger"
	"flashgen/internal/parser"
	"flashgen/internal/service"

	"go.uber.org/zap"
)

func main() {
	inPath := flag.String("in", "", "input file (.pdf or .txt)")
	subject := flag.String("subject", "General", "subject area used to tailor the flashcards")
	format := flag.String("format", "csv", "export format: csv, json, or anki")
	outPath := flag.String("out", "", "output file (defaults to flashcards.<ext>)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate -in <file> [-subject <name>] [-format csv|json|anki] [-out <file>]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not up yet, so use fmt for this critical error
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		appLogger.Fatal("Unsupported export format", zap.String("format", *format))
	}

	content, err := extract.FromFile(*inPath)
	if err != nil {
		appLogger.Fatal("Failed to extract text from input file", zap.String("file", *inPath), zap.Error(err))
	}

	openAIInvoker, err := llm.NewOpenAIInvoker(cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create LLM invoker", zap.Error(err))
	}

	var invoker domain.ModelInvoker = openAIInvoker
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis client", zap.Error(err))
		}
		invoker = adapter.NewCachedInvoker(openAIInvoker, adapter.NewRedisCacheAdapter(redisClient), openAIInvoker.Model(), cfg.Pipeline.CacheTTL, appLogger)
	} else {
		appLogger.Warn("Redis cache is not configured. Running without cache.")
	}

	flashcardService := service.NewFlashcardService(invoker, parser.New(appLogger), cfg.Pipeline, appLogger)

	cards, err := flashcardService.GenerateWithProgress(context.Background(), content, *subject,
		func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rProcessing chunk %d/%d...", completed, total)
			if completed == total {
				fmt.Fprintln(os.Stderr)
			}
		})
	if err != nil {
		if domain.IsCode(err, domain.CodeEmptyResult) {
			appLogger.Error("No flashcards were generated. Try different content.")
			os.Exit(1)
		}
		appLogger.Fatal("Flashcard generation failed", zap.Error(err))
	}

	groups := domain.GroupByTopic(cards)
	for _, topic := range groups.Order {
		fmt.Printf("Topic %q: %d cards\n", topic, len(groups.Buckets[topic]))
	}

	destination := *outPath
	if destination == "" {
		destination = exportFormat.DefaultFilename()
	}
	path, err := export.Export(exportFormat, cards, destination)
	if err != nil {
		appLogger.Fatal("Export failed", zap.Error(err))
	}

	fmt.Printf("Exported %d flashcards to %s\n", len(cards), path)
}
