// Package summarize maps the sections of a parsed paper to per-section summaries.
package summarize

import (
	"context"
	"fmt"

	"github.com/thywilljoshua/secsum/internal/ai"
	"github.com/thywilljoshua/secsum/internal/document"
)

// Section is the outcome for one non-blank input section: either a summary
// or the error the summarizer returned for it.
type Section struct {
	Header  string `json:"header"`
	Summary string `json:"summary,omitempty"`
	Err     error  `json:"-"`
}

func (s Section) Failed() bool { return s.Err != nil }

// Text is what the report prints for the section.
func (s Section) Text() string {
	if s.Err != nil {
		return ErrorText(s.Header, s.Err)
	}
	return s.Summary
}

func ErrorText(header string, err error) string {
	return fmt.Sprintf("Error summarizing section '%s': %v", header, err)
}

type Runner struct {
	Summarizer ai.Summarizer
	Options    ai.Options
	// Progress is called before each summarizer call with a 1-based position
	// among the non-blank sections.
	Progress func(i, n int, header string)
}

// Run summarizes doc's sections one at a time, in order. Blank sections are
// dropped. A summarizer error is recorded on its section and the run goes on;
// only invalid options or a done ctx end it early.
func (r Runner) Run(ctx context.Context, doc document.Document) ([]Section, error) {
	if err := r.Options.Validate(); err != nil {
		return nil, err
	}
	n := 0
	for _, s := range doc.Sections {
		if !s.IsBlank() {
			n++
		}
	}

	out := make([]Section, 0, n)
	for _, s := range doc.Sections {
		if s.IsBlank() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if r.Progress != nil {
			r.Progress(len(out)+1, n, s.Header)
		}
		summary, err := r.Summarizer.Summarize(ctx, s.Text, r.Options)
		if err != nil {
			out = append(out, Section{Header: s.Header, Err: err})
			continue
		}
		out = append(out, Section{Header: s.Header, Summary: summary})
	}
	return out, nil
}

func Sections(ctx context.Context, s ai.Summarizer, doc document.Document, opts ai.Options) ([]Section, error) {
	return Runner{Summarizer: s, Options: opts}.Run(ctx, doc)
}

// Stats counts outcomes for a run over doc.
type Stats struct {
	Summarized int `json:"summarized"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

func Count(doc document.Document, sections []Section) Stats {
	var st Stats
	for _, s := range sections {
		if s.Failed() {
			st.Failed++
		} else {
			st.Summarized++
		}
	}
	for _, s := range doc.Sections {
		if s.IsBlank() {
			st.Skipped++
		}
	}
	return st
}
