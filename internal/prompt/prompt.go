// Package prompt builds the system/user prompt pair for a single chunk
// and owns the closed subject-guide catalog.
package prompt

import "fmt"

// DefaultSubject is the fallback guide used for unknown subjects.
const DefaultSubject = "General"

// guides is a closed catalog: one style sentence per supported subject.
// Lookups for unknown subjects fall back to the General entry, never an
// error.
var guides = map[string]string{
	"General":          "Generate clear, concise flashcards covering key concepts.",
	"Biology":          "Focus on biological terms, processes, and relationships.",
	"History":          "Emphasize dates, events, causes, and historical figures.",
	"Computer Science": "Cover algorithms, data structures, programming concepts, and definitions.",
	"Medicine":         "Include anatomical terms, medical conditions, and treatments.",
	"Languages":        "Create vocabulary cards with word on front, translation and example sentence on back.",
}

// subjectOrder fixes the catalog order for listings and pickers.
var subjectOrder = []string{
	"General",
	"Biology",
	"History",
	"Computer Science",
	"Medicine",
	"Languages",
}

// Subjects returns the supported subject names in catalog order.
func Subjects() []string {
	out := make([]string, len(subjectOrder))
	copy(out, subjectOrder)
	return out
}

// GuideFor returns the style guide sentence for a subject, falling back
// to the General guide for unknown names.
func GuideFor(subject string) string {
	if guide, ok := guides[subject]; ok {
		return guide
	}
	return guides[DefaultSubject]
}

const systemTemplate = `You are an expert educational assistant that creates high-quality flashcards from educational content.

%s

Rules:
- Generate %d flashcards per chunk
- Each flashcard must have a clear question and a concise answer
- Answers should be self-contained and factually accurate
- Include difficulty level (Easy, Medium, Hard)
- Identify the main topic for each flashcard
- Respond with a single JSON object holding the key "flashcards" whose value is an array of objects with keys: question, answer, difficulty, topic

Example:
{
    "flashcards": [
        {
            "question": "What is the powerhouse of the cell?",
            "answer": "The mitochondrion is the powerhouse of the cell.",
            "difficulty": "Easy",
            "topic": "Cell Biology"
        },
        {
            "question": "What are the three stages of cellular respiration?",
            "answer": "The three stages are glycolysis, the Krebs cycle, and oxidative phosphorylation.",
            "difficulty": "Medium",
            "topic": "Cellular Respiration"
        }
    ]
}`

const userTemplate = `Please create flashcards from the following educational content:

%s`

// Build constructs the system and user prompts for one chunk. It is
// pure string construction with no side effects.
func Build(chunkText, subject string, cardsPerChunk int) (systemPrompt, userPrompt string) {
	systemPrompt = fmt.Sprintf(systemTemplate, GuideFor(subject), cardsPerChunk)
	userPrompt = fmt.Sprintf(userTemplate, chunkText)
	return systemPrompt, userPrompt
}
