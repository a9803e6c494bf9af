package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co/models"
	defaultHFModel   = "facebook/bart-large-cnn"
)

// HuggingFace calls a hosted summarization pipeline over the inference API.
type HuggingFace struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHuggingFace(token, model, baseURL string, timeout time.Duration) *HuggingFace {
	if model == "" {
		model = defaultHFModel
	}
	if baseURL == "" {
		baseURL = defaultHFBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HuggingFace{
		token:      token,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func (h *HuggingFace) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(hfRequest{
		Inputs:     text,
		Parameters: hfParameters{MaxLength: opts.MaxLength, MinLength: opts.MinLength, DoSample: false},
		Options:    hfOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+h.model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e hfError
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return "", fmt.Errorf("inference API status %d: %s", resp.StatusCode, e.Error)
		}
		return "", fmt.Errorf("inference API status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out []hfSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].SummaryText) == "" {
		return "", ErrEmptySummary
	}
	return strings.TrimSpace(out[0].SummaryText), nil
}
