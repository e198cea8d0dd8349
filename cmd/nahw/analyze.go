package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cours-d-arabe/nahw"
	"github.com/cours-d-arabe/nahw/internal/metrics"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		categories []string
		special    string
	)
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify one sentence and print the matches as JSON",
		Long: "Classify one sentence and print the matches as JSON.\n" +
			"The sentence is read from the arguments, or from stdin when there are none.",
		Example: `  nahw analyze --categories copula/auxiliary-verb,active-participle --special "اسم كان" كان الطالبُ مجتهدا`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(b)
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no text to analyze")
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, "stderr")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			analyzer, closeAnalyzer, err := buildAnalyzer(cmd.Context(), cfg, metrics.New(), logger)
			if err != nil {
				return err
			}
			defer closeAnalyzer()
			classifier, err := nahw.New(analyzer)
			if err != nil {
				return err
			}

			results, err := classifier.Analyze(cmd.Context(), nahw.Request{
				Text:       text,
				Categories: categories,
				Special:    special,
			})
			if err != nil {
				return err
			}
			if results == nil {
				results = []nahw.MatchResult{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(analyzeResponse{Results: results})
		},
	}
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "categories to look for, canonical labels or aliases")
	cmd.Flags().StringVar(&special, "special", "", "special request label, e.g. \"اسم كان\"")
	return cmd
}
