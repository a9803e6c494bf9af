package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thywilljoshua/secsum/internal/ai"
	"github.com/thywilljoshua/secsum/internal/config"
	"github.com/thywilljoshua/secsum/internal/extract"
	"github.com/thywilljoshua/secsum/internal/report"
	"github.com/thywilljoshua/secsum/internal/summarize"
)

type runResult struct {
	Input string `json:"input"`
	Out   string `json:"out"`
	summarize.Stats
}

func summarizeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "summarize <document.json|document.yaml|paper.pdf>",
		Short: "Summarize every non-empty section and write a text report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			config.LoadDotEnv()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stderr := cmd.ErrOrStderr()
			summarizer, err := ai.New(ctx, ai.Provider(cfg.Provider), cfg.Settings())
			if err != nil {
				return err
			}
			extractor, _ := summarizer.(ai.Extractor)
			if extract.IsPDF(input) && extractor != nil {
				fmt.Fprintf(stderr, "🤖 Extracting sections from %s with %s...\n", input, cfg.Provider)
			}
			doc, err := extract.Open(ctx, input, extractor)
			if err != nil {
				return err
			}

			runner := summarize.Runner{
				Summarizer: summarizer,
				Options:    cfg.Options(),
				Progress: func(i, n int, header string) {
					fmt.Fprintf(stderr, "📝 [%d/%d] %s\n", i, n, header)
				},
			}
			sections, err := runner.Run(ctx, doc)
			if err != nil {
				return err
			}
			if err := report.WriteFile(cfg.Out, doc, sections); err != nil {
				return err
			}

			res := runResult{Input: input, Out: cfg.Out, Stats: summarize.Count(doc, sections)}
			fmt.Fprintf(stderr, "✅ Summarized %d sections (%d failed, %d skipped) into %s\n", res.Summarized, res.Failed, res.Skipped, cfg.Out)
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	opts := ai.DefaultOptions()
	cmd.Flags().StringP("out", "o", "summarized_output.txt", "path of the text report")
	cmd.Flags().Int("max-length", opts.MaxLength, "upper bound on each summary's length")
	cmd.Flags().Int("min-length", opts.MinLength, "lower bound on each summary's length")
	cmd.Flags().String("ai", string(ai.ProviderHuggingFace), "summarization backend: gemini|huggingface|lead")
	cmd.Flags().String("model", "", "model name (default depends on --ai)")
	cmd.Flags().String("base-url", "", "override the backend API base URL")
	cmd.Flags().Duration("timeout", 2*time.Minute, "per-request timeout for the Hugging Face backend")
	cmd.Flags().String("config", "", "optional config file (yaml, json, toml)")
	return cmd
}
