// Package extract opens a paper for summarization: structured files are
// decoded directly and PDFs are handed to an AI extractor.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/secsum/internal/ai"
	"github.com/thywilljoshua/secsum/internal/document"
)

var ErrNoExtractor = errors.New("no PDF extractor configured")

func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func Open(ctx context.Context, path string, ex ai.Extractor) (document.Document, error) {
	if !IsPDF(path) {
		return document.Load(path)
	}
	if ex == nil {
		return document.Document{}, fmt.Errorf("%w: %s needs --ai gemini or a pre-extracted .json/.yaml document", ErrNoExtractor, path)
	}
	n, err := PageCount(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("read pdf %s: %w", path, err)
	}
	if n == 0 {
		return document.Document{}, fmt.Errorf("read pdf %s: no pages", path)
	}
	doc, err := ex.ExtractDocument(ctx, path)
	if err != nil {
		return document.Document{}, fmt.Errorf("extract %s: %w", path, err)
	}
	return doc, nil
}

func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, err
	}
	return doc.NumPage(), nil
}
