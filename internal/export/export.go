// Package export serializes flashcard lists to flat files. Filesystem
// errors propagate unchanged in meaning; there is no degraded mode for
// a failed write.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"flashgen/internal/domain"
)

// Format identifies a supported export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatAnki Format = "anki"
)

// ParseFormat maps a caller-supplied format name to a Format,
// case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "anki", "txt":
		return FormatAnki, nil
	default:
		return "", domain.NewUnsupportedFormatError(s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatAnki {
		return "txt"
	}
	return string(f)
}

// DefaultFilename returns the fallback export filename for the format.
func (f Format) DefaultFilename() string {
	return "flashcards." + f.Extension()
}

// Export writes cards to path in the given format and returns the path.
func Export(format Format, cards []domain.Flashcard, path string) (string, error) {
	switch format {
	case FormatCSV:
		return CSV(cards, path)
	case FormatJSON:
		return JSON(cards, path)
	case FormatAnki:
		return Anki(cards, path)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// CSV writes a header row followed by one row per card, in input order,
// with standard CSV quoting.
func CSV(cards []domain.Flashcard, path string) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", domain.NewExportError("failed to create CSV file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"question", "answer", "difficulty", "topic"}); err != nil {
		return "", domain.NewExportError("failed to write CSV header", err)
	}
	for _, card := range cards {
		if err := w.Write([]string{card.Question, card.Answer, card.Difficulty, card.Topic}); err != nil {
			return "", domain.NewExportError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewExportError("failed to flush CSV file", err)
	}
	return path, nil
}

// JSON writes the cards wrapped in the {"flashcards": [...]} envelope,
// pretty-printed. The output round-trips through the response parser.
func JSON(cards []domain.Flashcard, path string) (string, error) {
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	envelope := struct {
		Flashcards []domain.Flashcard `json:"flashcards"`
	}{Flashcards: cards}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", domain.NewExportError("failed to encode flashcards", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.NewExportError("failed to write JSON file", err)
	}
	return path, nil
}

// Anki writes one tab-separated line per card: question, answer, and a
// tag token built from difficulty and topic with spaces collapsed to
// underscores. A card without difficulty or topic is rejected; those
// fields are required upstream and the tag would be meaningless.
func Anki(cards []domain.Flashcard, path string) (string, error) {
	var sb strings.Builder
	for i, card := range cards {
		if card.Difficulty == "" || card.Topic == "" {
			return "", domain.NewExportError(
				fmt.Sprintf("card %d is missing difficulty or topic required for Anki tags", i), nil)
		}
		tag := strings.ReplaceAll(card.Difficulty+" "+card.Topic, " ", "_")
		sb.WriteString(card.Question)
		sb.WriteByte('\t')
		sb.WriteString(card.Answer)
		sb.WriteByte('\t')
		sb.WriteString(tag)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", domain.NewExportError("failed to write Anki file", err)
	}
	return path, nil
}
