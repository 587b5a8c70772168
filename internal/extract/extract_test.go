package extract

import (
	"os"
	"path/filepath"
	"testing"

	"flashgen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some study notes"), 0o644))

	content, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "some study notes", content)
}

func TestFromFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := FromFile(path)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUnsupportedFormat))
}

func TestFromUpload_Text(t *testing.T) {
	content, err := FromUpload("lecture.TXT", []byte("uploaded notes"))
	require.NoError(t, err)
	assert.Equal(t, "uploaded notes", content)
}

func TestFromUpload_UnsupportedExtension(t *testing.T) {
	_, err := FromUpload("slides.pptx", []byte("x"))
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUnsupportedFormat))
}

func TestFromUpload_MalformedPDF(t *testing.T) {
	_, err := FromUpload("broken.pdf", []byte("not a real pdf"))
	assert.Error(t, err)
}
