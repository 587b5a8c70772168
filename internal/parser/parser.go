// Package parser turns a raw model response into validated flashcards.
package parser

import (
	"encoding/json"
	"strings"

	"flashgen/internal/domain"

	"go.uber.org/zap"
)

const fence = "```"

// Parser extracts and validates the flashcard payload from a raw LLM
// response, which may arrive wrapped in a markdown code fence.
type Parser struct {
	logger *zap.Logger
}

// New creates a Parser. Records that fail validation are skipped and
// logged through the given logger rather than failing the whole batch.
func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse decodes raw into flashcards. It returns a CodeParse domain
// error when the payload is not valid JSON, lacks the "flashcards" key,
// or the key does not hold an array. Individual records that are
// missing a field or carry an unknown difficulty are dropped; the rest
// of the batch is kept.
func (p *Parser) Parse(raw string) ([]domain.Flashcard, error) {
	payload := extractJSON(raw)

	var envelope struct {
		Flashcards *[]domain.Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, domain.NewParseError("model response is not valid flashcard JSON", err)
	}
	if envelope.Flashcards == nil {
		return nil, domain.NewParseError(`model response is missing the "flashcards" key`, nil)
	}

	cards := make([]domain.Flashcard, 0, len(*envelope.Flashcards))
	for i, card := range *envelope.Flashcards {
		if normalized, ok := domain.NormalizeDifficulty(card.Difficulty); ok {
			card.Difficulty = normalized
		}
		if err := card.Validate(); err != nil {
			p.logger.Warn("Dropping invalid flashcard record",
				zap.Int("record_index", i),
				zap.Error(err),
			)
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// extractJSON strips an optional markdown code fence. A fence tagged
// "json" wins over an untagged one; without any fence the text is used
// as-is.
func extractJSON(raw string) string {
	if i := strings.Index(raw, fence+"json"); i >= 0 {
		rest := raw[i+len(fence+"json"):]
		if j := strings.Index(rest, fence); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	if i := strings.Index(raw, fence); i >= 0 {
		rest := raw[i+len(fence):]
		if j := strings.Index(rest, fence); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	return raw
}
