package domain

import "strings"

// Difficulty levels a flashcard may carry. The model is instructed to
// use exactly these values; anything else fails validation.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// UncategorizedTopic is the bucket for cards whose topic is missing or empty.
const UncategorizedTopic = "Uncategorized"

// Flashcard represents a single validated question/answer record.
// The pipeline never mutates a card after it is produced; callers may
// edit cards before handing them to an exporter.
type Flashcard struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
}

// NormalizeDifficulty maps a difficulty string to its canonical form,
// matching case-insensitively. It returns false if the value is not one
// of the three allowed levels.
func NormalizeDifficulty(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return "", false
	}
}

// Validate checks that all four fields are present and that the
// difficulty is one of the allowed levels.
func (f *Flashcard) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(f.Question) == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	if strings.TrimSpace(f.Answer) == "" {
		errs = append(errs, NewMissingFieldError("answer"))
	}
	if _, ok := NormalizeDifficulty(f.Difficulty); !ok {
		errs = append(errs, NewInvalidFormatError("difficulty", f.Difficulty))
	}
	if strings.TrimSpace(f.Topic) == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TopicGroups partitions a flashcard list by topic. Order preserves the
// first-seen topic order; Buckets holds each topic's cards in their
// original relative order.
type TopicGroups struct {
	Order   []string
	Buckets map[string][]Flashcard
}

// GroupByTopic partitions cards by topic in a single pass. A card with
// an empty topic lands in the Uncategorized bucket. Every card appears
// in exactly one bucket and the union of all buckets equals the input.
func GroupByTopic(cards []Flashcard) TopicGroups {
	groups := TopicGroups{Buckets: make(map[string][]Flashcard)}
	for _, card := range cards {
		topic := card.Topic
		if strings.TrimSpace(topic) == "" {
			topic = UncategorizedTopic
		}
		if _, seen := groups.Buckets[topic]; !seen {
			groups.Order = append(groups.Order, topic)
		}
		groups.Buckets[topic] = append(groups.Buckets[topic], card)
	}
	return groups
}
