package cli

import (
	"fmt"

	"github.com/me/langparse/pkg/model"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var req model.LanguageParsingRequest
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "parse <nextflow|wdl>",
		Short:     "Parse a descriptor in a remote repository via the server",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"nextflow", "wdl"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := model.ParseLanguage(args[0])
			if !ok {
				return fmt.Errorf("unknown language %q (want nextflow or wdl)", args[0])
			}
			if errs := req.Validate(); len(errs) > 0 {
				return model.NewValidationError("missing required flags", errs...)
			}

			resp, err := client.Parse(lang, &req)
			if err != nil {
				return fmt.Errorf("parse %s: %w", lang, err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.URI, "uri", "", "Repository URI")
	cmd.Flags().StringVar(&req.Branch, "branch", "", "Branch to check out")
	cmd.Flags().StringVar(&req.DescriptorRelativePathInGit, "path", "", "Descriptor path relative to the repository root")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")
	return cmd
}
