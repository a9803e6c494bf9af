package ai

import (
	"context"
	"strings"
)

// Lead is an offline summarizer that keeps the leading sentences of a text,
// at most MaxLength words, cut on the last sentence end at or after MinLength words.
type Lead struct{}

func (Lead) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", ErrEmptySummary
	}
	if len(words) <= opts.MaxLength {
		return strings.Join(words, " "), nil
	}
	words = words[:opts.MaxLength]
	for i := len(words) - 1; i >= opts.MinLength-1; i-- {
		if endsSentence(words[i]) {
			return strings.Join(words[:i+1], " "), nil
		}
	}
	return strings.Join(words, " "), nil
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, `"')]`)
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}
