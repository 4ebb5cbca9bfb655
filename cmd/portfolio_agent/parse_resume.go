package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/spf13/cobra"
)

// newLLMClient is swapped in tests
var newLLMClient = func(ctx context.Context, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
}

func newParseResumeCmd(root *rootOptions) *cobra.Command {
	var (
		input  string
		output string
		apiKey string
	)

	cmd := &cobra.Command{
		Use:   "parse-resume",
		Short: "Convert a plain-text resume into resume JSON",
		Long:  "Parse a plain-text resume into a JSON resume document that validates against the resume schema.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if apiKey == "" {
				apiKey = cfg.APIKey
			}
			if apiKey == "" {
				return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
			}

			text, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			client, err := newLLMClient(cmd.Context(), apiKey)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}
			defer func() { _ = client.Close() }()

			doc, err := parsing.ParseResumeText(cmd.Context(), client, string(text))
			if err != nil {
				return fmt.Errorf("failed to parse resume: %w", err)
			}

			if err := writeJSONOutput(cmd.OutOrStdout(), output, doc); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Parsed %s -> %s (%d skills, %d work entries, %d projects)\n",
					input, output, len(doc.Skills), len(doc.Work), len(doc.Projects))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "", "Path to the plain-text resume")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Path to the output JSON file (stdout when empty)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
