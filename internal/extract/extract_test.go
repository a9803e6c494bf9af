package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thywilljoshua/secsum/internal/document"
)

// minimalPDF builds a one-page PDF with a correct xref table.
func minimalPDF() []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return []byte(b.String())
}

type fakeExtractor struct {
	doc   document.Document
	err   error
	calls int
}

func (f *fakeExtractor) ExtractDocument(ctx context.Context, pdfPath string) (document.Document, error) {
	f.calls++
	return f.doc, f.err
}

func write(t *testing.T, name string, b []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(write(t, "one.pdf", minimalPDF()))
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 1 {
		t.Errorf("PageCount = %d, want 1", n)
	}
	if _, err := PageCount(write(t, "bad.pdf", []byte("not a pdf at all, just some text that is long enough to read"))); err == nil {
		t.Error("expected error for invalid PDF")
	}
}

func TestOpenStructuredFile(t *testing.T) {
	ex := &fakeExtractor{}
	doc, err := Open(context.Background(), write(t, "paper.json", []byte(`{"title": "T"}`)), ex)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Title != "T" {
		t.Errorf("title = %q", doc.Title)
	}
	if ex.calls != 0 {
		t.Error("extractor should not be used for JSON input")
	}
}

func TestOpenPDF(t *testing.T) {
	want := document.Document{Title: "From PDF", Sections: []document.Section{{Header: "A", Text: "b"}}}
	ex := &fakeExtractor{doc: want}
	doc, err := Open(context.Background(), write(t, "paper.PDF", minimalPDF()), ex)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Title != want.Title || len(doc.Sections) != 1 || ex.calls != 1 {
		t.Errorf("unexpected result %+v (calls=%d)", doc, ex.calls)
	}
}

func TestOpenPDFErrors(t *testing.T) {
	pdf := write(t, "paper.pdf", minimalPDF())
	if _, err := Open(context.Background(), pdf, nil); !errors.Is(err, ErrNoExtractor) {
		t.Errorf("expected ErrNoExtractor, got %v", err)
	}

	ex := &fakeExtractor{}
	if _, err := Open(context.Background(), write(t, "broken.pdf", []byte("garbage garbage garbage garbage garbage garbage garbage garbage garbage garbage garbage")), ex); err == nil {
		t.Error("expected error for unreadable PDF")
	}
	if ex.calls != 0 {
		t.Error("extractor should not run on an unreadable PDF")
	}

	boom := errors.New("quota exceeded")
	if _, err := Open(context.Background(), pdf, &fakeExtractor{err: boom}); !errors.Is(err, boom) {
		t.Errorf("expected extractor error, got %v", err)
	}
}
