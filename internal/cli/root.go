package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewRootCmd(session *Session) *cobra.Command {
	flags := &sessionFlags{}

	cmd := &cobra.Command{
		Use:   "awsls",
		Short: "List AWS resources with automatic pagination",
		Long: `List AWS resources with automatic pagination.

Listing commands follow continuation tokens until the service reports no more results.
Use --max-items to cap the number of results, --page-size to control how many results
each request asks for, and --no-paginate or --starting-token to page by hand.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help, version and shell completion
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			if cmd.HasParent() && cmd.Parent().Name() == "completion" {
				return nil
			}
			return session.init(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.region, "region", "", "AWS region (defaults to the SDK region resolution)")
	cmd.PersistentFlags().StringVar(&flags.profile, "profile", "", "Shared config profile to use")
	cmd.PersistentFlags().StringVarP(&flags.format, "output", "o", envOrDefault("AWSLS_OUTPUT", "json"), "Output format: json, jsonl, or text (can also be set via AWSLS_OUTPUT env var)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", envOrDefault("AWSLS_LOG_LEVEL", "warn"), "Log level: debug, info, warn, or error (can also be set via AWSLS_LOG_LEVEL env var)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug output")
	cmd.PersistentFlags().StringVar(&flags.metricsFile, "metrics-file", "", "Write paging metrics in Prometheus text format to this file")

	cmd.AddCommand(
		NewLogsCmd(session),
		NewDynamoDBCmd(session),
		NewEC2Cmd(session),
		NewECSCmd(session),
		NewFISCmd(session),
		NewIAMCmd(session),
		NewTaggingCmd(session),
		NewSecretsCmd(session),
		NewSSMCmd(session),
		NewWhoAmICmd(session),
		NewVersionCmd(),
	)

	return cmd
}
