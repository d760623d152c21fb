package cli

import (
	"log/slog"
	"os"

	"github.com/me/langparse/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking LANGPARSE_SERVER first.
func defaultServer() string {
	if s := os.Getenv("LANGPARSE_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the langparse CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "langparse",
		Short: "Validate workflow descriptors and list their secondary files",
		Long:  "langparse validates Nextflow and WDL descriptors in git repositories and reports the files they depend on.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "langparse server URL (or LANGPARSE_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newParseCmd(),
		newLocalCmd(),
		newHistoryCmd(),
	)

	return root
}
