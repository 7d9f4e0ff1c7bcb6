package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"awsls/internal/awsapi"
	"awsls/internal/logging"
	"awsls/internal/output"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ConfigLoader loads the AWS configuration for a region and shared config profile.
// Empty values fall back to the SDK defaults.
type ConfigLoader func(ctx context.Context, region, profile string) (aws.Config, error)

// Session is the per-invocation state shared by all commands: the AWS configuration,
// service clients, logger and result printer. It is filled in by the root command
// before any subcommand runs.
type Session struct {
	load    ConfigLoader
	clients awsapi.Clients

	cfg         aws.Config
	logger      zerolog.Logger
	printer     *output.Printer
	stderr      io.Writer
	metricsFile string
}

func NewSession(load ConfigLoader, clients awsapi.Clients) *Session {
	return &Session{
		load:    load,
		clients: clients,
		logger:  zerolog.Nop(),
		stderr:  os.Stderr,
	}
}

type sessionFlags struct {
	region      string
	profile     string
	format      string
	logLevel    string
	debug       bool
	metricsFile string
}

func (s *Session) init(cmd *cobra.Command, flags *sessionFlags) error {
	format, err := output.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	level := flags.logLevel
	if flags.debug {
		level = "debug"
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Output = cmd.ErrOrStderr()
	s.logger = logging.Setup(logCfg).With().Str("component", "awsls").Logger()
	s.printer = output.NewPrinter(cmd.OutOrStdout(), format)
	s.stderr = cmd.ErrOrStderr()
	s.metricsFile = flags.metricsFile

	cfg, err := s.load(cmd.Context(), flags.region, flags.profile)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}
	s.cfg = cfg
	s.logger.Debug().Str("region", cfg.Region).Str("profile", flags.profile).Msg("Loaded AWS configuration")
	return nil
}

// Finish writes the collected paging metrics when --metrics-file was given.
func (s *Session) Finish() error {
	if s.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.metricsFile, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
