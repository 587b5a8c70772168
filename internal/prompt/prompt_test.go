package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_EmbedsGuideCountAndChunk(t *testing.T) {
	system, user := Build("The Krebs cycle produces ATP.", "Biology", 5)

	assert.Contains(t, system, GuideFor("Biology"))
	assert.Contains(t, system, "Generate 5 flashcards per chunk")
	assert.Contains(t, system, `"flashcards"`)
	assert.Contains(t, system, "Easy, Medium, Hard")
	assert.Contains(t, user, "The Krebs cycle produces ATP.")
}

func TestBuild_UnknownSubjectFallsBackToGeneral(t *testing.T) {
	system, _ := Build("content", "Astrology", 3)
	assert.Contains(t, system, GuideFor(DefaultSubject))
}

func TestBuild_IncludesFewShotExample(t *testing.T) {
	system, _ := Build("content", "General", 2)
	assert.Contains(t, system, "powerhouse of the cell")
	assert.Contains(t, system, `"difficulty": "Easy"`)
}

func TestGuideFor_CoversCatalog(t *testing.T) {
	for _, subject := range Subjects() {
		assert.NotEmpty(t, GuideFor(subject), "guide missing for %s", subject)
	}
}

func TestSubjects_StableOrderWithGeneralFirst(t *testing.T) {
	subjects := Subjects()
	assert.Equal(t, DefaultSubject, subjects[0])
	assert.Len(t, subjects, 6)
}

func TestBuild_UserPromptWrapsChunkVerbatim(t *testing.T) {
	chunk := "line one\nline two\twith tab"
	_, user := Build(chunk, "History", 4)
	assert.True(t, strings.HasSuffix(user, fmt.Sprintf("\n\n%s", chunk)))
}
