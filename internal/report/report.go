// Package report renders summarized sections and paper metadata as a plain-text report.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thywilljoshua/secsum/internal/document"
	"github.com/thywilljoshua/secsum/internal/summarize"
)

func Render(doc document.Document, sections []summarize.Section) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Title: %s\n", doc.Title))
	b.WriteString(fmt.Sprintf("Abstract: %s\n\n", doc.Abstract))
	b.WriteString(fmt.Sprintf("Authors: %s\n", strings.Join(doc.Authors, ", ")))
	b.WriteString(fmt.Sprintf("Affiliations: %s\n", strings.Join(doc.Affiliations, ", ")))
	b.WriteString(fmt.Sprintf("Publication Date: %s\n\n", doc.PubDate))

	b.WriteString("Summarized Sections:\n")
	for _, s := range sections {
		b.WriteString(fmt.Sprintf("\n- %s:\n%s\n", s.Header, s.Text()))
	}

	b.WriteString("\nReferences:\n")
	for _, ref := range doc.References {
		b.WriteString(fmt.Sprintf("- %s\n  by %s\n", ref.Title, document.AuthorLine(ref.Authors)))
	}
	return b.String()
}

func Write(w io.Writer, doc document.Document, sections []summarize.Section) error {
	_, err := io.WriteString(w, Render(doc, sections))
	return err
}

// WriteFile writes the report to path, creating parent directories.
func WriteFile(path string, doc document.Document, sections []summarize.Section) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(Render(doc, sections)), 0o644)
}
