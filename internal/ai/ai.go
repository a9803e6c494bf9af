package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thywilljoshua/secsum/internal/document"
)

var (
	ErrInvalidOptions = errors.New("invalid summary length bounds")
	ErrEmptySummary   = errors.New("model returned an empty summary")
)

// Options bounds the length of a generated summary. Units are model tokens
// for Hugging Face and words for Gemini and Lead.
type Options struct {
	MaxLength int
	MinLength int
}

func DefaultOptions() Options { return Options{MaxLength: 130, MinLength: 30} }

func (o Options) Validate() error {
	if o.MaxLength <= 0 || o.MinLength <= 0 {
		return fmt.Errorf("%w: max_length=%d min_length=%d must be positive", ErrInvalidOptions, o.MaxLength, o.MinLength)
	}
	if o.MinLength > o.MaxLength {
		return fmt.Errorf("%w: min_length=%d exceeds max_length=%d", ErrInvalidOptions, o.MinLength, o.MaxLength)
	}
	return nil
}

// Summarizer produces a deterministic summary of text within opts bounds.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts Options) (string, error)
}

// Extractor turns a PDF into the structured document the summarizer consumes.
type Extractor interface {
	ExtractDocument(ctx context.Context, pdfPath string) (document.Document, error)
}

type Provider string

const (
	ProviderGemini      Provider = "gemini"
	ProviderHuggingFace Provider = "huggingface"
	ProviderLead        Provider = "lead"
)

func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderHuggingFace, ProviderLead}
}

func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown AI provider %q (want gemini|huggingface|lead)", s)
}

type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// New builds the summarizer once per process; callers reuse it for every section.
func New(ctx context.Context, p Provider, s Settings) (Summarizer, error) {
	switch p {
	case ProviderGemini:
		return NewGemini(ctx, s.APIKey, s.Model, s.BaseURL)
	case ProviderHuggingFace:
		return NewHuggingFace(s.APIKey, s.Model, s.BaseURL, s.Timeout), nil
	case ProviderLead:
		return Lead{}, nil
	}
	return nil, fmt.Errorf("unknown AI provider %q", p)
}
