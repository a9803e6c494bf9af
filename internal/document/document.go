// Package document holds the parsed-paper structure produced by an upstream
// extractor (GROBID or an AI extractor) and the helpers to load it.
package document

import (
	"strings"
)

type Section struct {
	Header string `json:"header" yaml:"header"`
	Text   string `json:"text" yaml:"text"`
}

// IsBlank reports whether the section has no text worth summarizing.
func (s Section) IsBlank() bool { return strings.TrimSpace(s.Text) == "" }

type Reference struct {
	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`
}

type Document struct {
	Title        string      `json:"title" yaml:"title"`
	Abstract     string      `json:"abstract" yaml:"abstract"`
	Authors      []string    `json:"authors" yaml:"authors"`
	Affiliations []string    `json:"affiliations" yaml:"affiliations"`
	PubDate      string      `json:"pub_date" yaml:"pub_date"`
	Sections     []Section   `json:"sections" yaml:"sections"`
	References   []Reference `json:"references" yaml:"references"`
}

// AuthorLine joins reference authors for display. Extractors split hyphenated
// surnames into a separate "-Name" entry, so ", -" is folded back into "-".
func AuthorLine(authors []string) string {
	return strings.ReplaceAll(strings.Join(authors, ", "), ", -", "-")
}
