// Package chunker splits free-form text into bounded-length segments,
// each small enough for a single LLM request.
package chunker

import (
	"strings"
	"unicode"
)

// Split breaks content into ordered chunks of at most maxSize
// characters, preferring to cut at the last newline inside the window.
// When the window contains no newline the cut is made exactly at
// maxSize, which may land mid-word; that is the accepted tradeoff for a
// hard size bound. The remainder is stripped of leading whitespace
// before being split further, so each step consumes at least one
// character and the loop terminates. Empty input yields no chunks.
func Split(content string, maxSize int) []string {
	if maxSize < 1 {
		return nil
	}

	var chunks []string
	for content != "" {
		if len(content) <= maxSize {
			chunks = append(chunks, content)
			break
		}
		cut := strings.LastIndexByte(content[:maxSize], '\n')
		if cut == -1 {
			cut = maxSize
		}
		// cut == 0 happens only when the text starts with a newline; the
		// empty prefix is not a chunk.
		if cut > 0 {
			chunks = append(chunks, content[:cut])
		}
		content = strings.TrimLeftFunc(content[cut:], unicode.IsSpace)
	}
	return chunks
}
