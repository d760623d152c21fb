package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/me/langparse/pkg/model"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResponse writes a human-readable summary of resp.
func printResponse(w io.Writer, resp *model.LanguageParsingResponse) {
	fmt.Fprintf(w, "Descriptor: %s\n", resp.ClonedRepositoryAbsolutePath)
	if resp.Commit != "" {
		fmt.Fprintf(w, "Commit:     %s\n", resp.Commit)
	}
	fmt.Fprintf(w, "Valid:      %t\n", resp.VersionTypeValidation.Valid)

	if len(resp.VersionTypeValidation.Message) > 0 {
		paths := make([]string, 0, len(resp.VersionTypeValidation.Message))
		for p := range resp.VersionTypeValidation.Message {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		fmt.Fprintln(w, "Messages:")
		for _, p := range paths {
			fmt.Fprintf(w, "  %s: %s\n", p, resp.VersionTypeValidation.Message[p])
		}
	}
	if len(resp.Author) > 0 {
		fmt.Fprintf(w, "Authors:    %v\n", resp.Author)
	}
	if resp.Description != nil {
		fmt.Fprintf(w, "About:      %s\n", *resp.Description)
	}

	fmt.Fprintf(w, "Secondary files (%d):\n", len(resp.SecondaryFilePaths))
	for _, p := range resp.SecondaryFilePaths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
