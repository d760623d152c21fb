package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/me/langparse/pkg/model"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		language string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent resolutions recorded by the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if language != "" {
				q.Set("language", language)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				q.Set("offset", strconv.Itoa(offset))
			}
			path := "/api/v1/resolutions"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list resolutions: %w", err)
			}

			var data []model.Resolution
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(data) == 0 {
				fmt.Fprintln(out, "No resolutions found.")
				return nil
			}

			fmt.Fprintf(out, "%-40s  %-8s  %-5s  %-5s  %s\n", "ID", "LANGUAGE", "VALID", "FILES", "REPOSITORY")
			fmt.Fprintf(out, "%-40s  %-8s  %-5s  %-5s  %s\n", "--", "--------", "-----", "-----", "----------")
			for _, r := range data {
				fmt.Fprintf(out, "%-40s  %-8s  %-5t  %-5d  %s@%s:%s\n",
					r.ID, r.Language, r.Valid, r.SecondaryCount, r.URI, r.Branch, r.DescriptorPath)
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(data), resp.Pagination.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Only show one language (nextflow, wdl)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows (server default when 0)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	return cmd
}
