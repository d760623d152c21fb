package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/me/langparse/internal/evaluator"
	"github.com/me/langparse/internal/langparse"
	"github.com/me/langparse/internal/nextflow"
	"github.com/me/langparse/internal/wdl"
	"github.com/me/langparse/pkg/model"
	"github.com/spf13/cobra"
)

func newLocalCmd() *cobra.Command {
	var (
		language     string
		evaluatorCmd string
		womtoolCmd   string
		timeout      time.Duration
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "local <descriptor>",
		Short: "Parse a descriptor in a local checkout without a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := model.ParseLanguage(language)
			if !ok {
				return fmt.Errorf("unknown language %q (want nextflow or wdl)", language)
			}

			ev := evaluator.NewCommandEvaluator(strings.Fields(evaluatorCmd), nil, logger)
			x, err := evaluator.NewExtractor(ev, evaluator.Config{Timeout: timeout}, logger)
			if err != nil {
				return err
			}
			tk := wdl.NewWomtool(strings.Fields(womtoolCmd), timeout, logger)
			svc := langparse.New(nil,
				nextflow.NewResolver(x, logger),
				wdl.NewResolver(tk, logger),
				logger,
			)

			resp, err := svc.ParseLocal(cmd.Context(), lang, args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "nextflow", "Descriptor language (nextflow, wdl)")
	cmd.Flags().StringVar(&evaluatorCmd, "evaluator", strings.Join(evaluator.DefaultCommand, " "), "Nextflow config evaluator command")
	cmd.Flags().StringVar(&womtoolCmd, "womtool", strings.Join(wdl.DefaultCommand, " "), "womtool command")
	cmd.Flags().DurationVar(&timeout, "timeout", evaluator.DefaultTimeout, "Per-run limit for the evaluator or womtool")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the JSON response")
	return cmd
}
