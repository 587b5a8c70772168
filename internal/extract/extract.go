// Package extract pulls plain text out of uploaded study material so
// the pipeline only ever sees raw text. Extraction fidelity (layout,
// tables, images) is out of scope.
package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flashgen/internal/domain"

	"github.com/ledongthuc/pdf"
)

// FromFile reads path and returns its text content. Supported
// extensions are .pdf and .txt.
func FromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		f, err := os.Open(path)
		if err != nil {
			return "", domain.NewInternalError("failed to open PDF file", err)
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return "", domain.NewInternalError("failed to stat PDF file", err)
		}
		return PDF(f, stat.Size())
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", domain.NewInternalError("failed to read text file", err)
		}
		return string(data), nil
	default:
		return "", domain.NewUnsupportedFormatError(filepath.Ext(path))
	}
}

// FromUpload extracts text from an in-memory upload, dispatching on the
// original filename's extension.
func FromUpload(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF(bytes.NewReader(data), int64(len(data)))
	case ".txt":
		return string(data), nil
	default:
		return "", domain.NewUnsupportedFormatError(filepath.Ext(filename))
	}
}

// PDF concatenates the extractable text of every page, in page order.
func PDF(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", domain.NewInvalidInputError("failed to read PDF: " + err.Error())
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", domain.NewInternalError("failed to extract PDF page text", err)
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
