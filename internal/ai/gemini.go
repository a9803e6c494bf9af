package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "google.golang.org/genai"

	"github.com/thywilljoshua/secsum/internal/document"
)

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	cc := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

// deterministic disables sampling so identical input yields identical output.
func deterministic() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:    genai.Ptr[float32](0),
		TopK:           genai.Ptr[float32](1),
		CandidateCount: 1,
		Seed:           genai.Ptr[int32](0),
	}
}

func summaryPrompt(text string, opts Options) string {
	return fmt.Sprintf("Summarize the following section of a research paper in %d to %d words of plain prose. "+
		"Return only the summary, no headings, lists or preamble.\n\n%s", opts.MinLength, opts.MaxLength, text)
}

// Summarize leaves MaxOutputTokens unset: thinking models spend output tokens
// before answering and a tight cap yields empty text. The word bounds live in the prompt.
func (g *Gemini) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(summaryPrompt(text, opts), genai.RoleUser),
	}, deterministic())
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(res.Text())
	if out == "" {
		return "", ErrEmptySummary
	}
	return out, nil
}

const extractPrompt = `You are a scientific paper parser. Return ONLY valid JSON - no markdown code blocks, no explanations.

Extract the paper metadata, body sections and bibliography from this PDF.
Output ONLY this JSON structure:
{
  "title": "Paper title",
  "abstract": "Full abstract text",
  "authors": ["First Author", "Second Author"],
  "affiliations": ["Institution of an author"],
  "pub_date": "Publication date as printed, empty if absent",
  "sections": [{"header": "Introduction", "text": "Full text of the section"}],
  "references": [{"title": "Cited work title", "authors": ["Cited Author"]}]
}

RULES:
- sections: body sections in reading order, one entry per heading, complete paragraph text
- do not include the abstract or the bibliography in sections
- references: one entry per bibliography item, authors as printed
- DO NOT wrap response in code blocks
`

// ExtractDocument asks Gemini to read a PDF and return it in the document shape.
func (g *Gemini) ExtractDocument(ctx context.Context, pdfPath string) (document.Document, error) {
	b, err := os.ReadFile(pdfPath)
	if err != nil {
		return document.Document{}, err
	}
	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: extractPrompt},
				{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: b}},
			},
		},
	}
	cfg := deterministic()
	cfg.ResponseMIMEType = "application/json"
	res, err := g.client.Models.GenerateContent(ctx, g.model, content, cfg)
	if err != nil {
		return document.Document{}, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseDocumentJSON(res.Text())
}

func parseDocumentJSON(js string) (document.Document, error) {
	js = stripCodeFences(js)
	doc, err := document.Decode(strings.NewReader(js), document.FormatJSON)
	if err == nil {
		return doc, nil
	}
	s := findFirstJSON(js)
	if s == "" {
		return document.Document{}, fmt.Errorf("failed to parse Gemini response - no JSON found: %w", err)
	}
	doc, err2 := document.Decode(strings.NewReader(s), document.FormatJSON)
	if err2 != nil {
		return document.Document{}, fmt.Errorf("failed to parse Gemini response as JSON: %w (original error: %v)", err2, err)
	}
	return doc, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// findFirstJSON returns the first balanced {...} object in s. Braces inside
// JSON strings are skipped.
func findFirstJSON(s string) string {
	start, depth := -1, 0
	inString, escaped := false, false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
