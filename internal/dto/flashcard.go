package dto

import "flashgen/internal/domain"

// GenerateRequest is the JSON body for text-based generation.
type GenerateRequest struct {
	Content string `json:"content"`
	Subject string `json:"subject"`
}

// TopicGroup is one topic bucket in a generation response.
type TopicGroup struct {
	Topic      string             `json:"topic"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// GenerateResponse carries the merged flashcard list plus its
// per-topic grouping.
type GenerateResponse struct {
	Subject    string             `json:"subject"`
	CardCount  int                `json:"card_count"`
	Flashcards []domain.Flashcard `json:"flashcards"`
	Topics     []TopicGroup       `json:"topics"`
}

// NewTopicGroups flattens domain.TopicGroups into the ordered response
// shape, preserving first-seen topic order.
func NewTopicGroups(groups domain.TopicGroups) []TopicGroup {
	out := make([]TopicGroup, 0, len(groups.Order))
	for _, topic := range groups.Order {
		out = append(out, TopicGroup{Topic: topic, Flashcards: groups.Buckets[topic]})
	}
	return out
}

// ExportRequest is the JSON body for exporting a (possibly
// caller-edited) flashcard list.
type ExportRequest struct {
	Format     string             `json:"format"`
	Filename   string             `json:"filename,omitempty"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// ExportResponse reports where the export was written.
type ExportResponse struct {
	File      string `json:"file"`
	CardCount int    `json:"card_count"`
}

// SubjectInfo describes one entry of the subject-guide catalog.
type SubjectInfo struct {
	Name  string `json:"name"`
	Guide string `json:"guide"`
}

// SubjectsResponse lists the supported subjects in catalog order.
type SubjectsResponse struct {
	Subjects []SubjectInfo `json:"subjects"`
}

// ErrorResponse is the minimal error body used by handlers for request
// decoding failures; richer errors flow through the error middleware.
type ErrorResponse struct {
	Error string `json:"error"`
}
