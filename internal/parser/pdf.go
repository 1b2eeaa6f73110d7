package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// UploadLoader turns uploaded files into plain text for the import pipeline.
// PDFs are read page by page with mupdf; plain text files are read directly.
type UploadLoader struct {
	logger *zap.Logger
}

// NewUploadLoader creates a new upload loader.
func NewUploadLoader(logger *zap.Logger) *UploadLoader {
	return &UploadLoader{logger: logger}
}

// LoadText extracts the text content of an uploaded file.
func (l *UploadLoader) LoadText(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return l.loadPDF(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// loadPDF extracts the text of every page and joins pages with blank lines so
// the segmenter treats page breaks as section boundaries.
func (l *UploadLoader) loadPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	l.logger.Debug("Extracting PDF text", zap.String("path", path), zap.Int("pages", pageCount))

	var pages []string
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			l.logger.Warn("Failed to extract page text",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no text extracted from PDF: %s", path)
	}

	return strings.Join(pages, "\n\n\n"), nil
}
