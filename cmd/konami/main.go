// Command konami encodes bytes as Konami-code token strings and runs a
// simple additive stream cipher over them.
//
// With no subcommand it starts an interactive shell:
//
//	konami
//	konami -c /etc/konami --log-level debug
//
// For one-shot usage see:
//
//	konami --help
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dcrodman/konami/internal/core"
	"github.com/dcrodman/konami/internal/shell"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "konami",
		Short:        "Konami code encoder and cipher",
		Args:         cobra.NoArgs,
		RunE:         ShellCommand,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the directory containing config.yaml")
	rootCmd.PersistentFlags().String("log-level", "info", "Minimum level of logs to write (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log a dump of the decoded key offsets for every request")

	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newDecryptCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup loads the config and logger shared by every command. The returned
// func closes the log file, if there is one.
func setup(cmd *cobra.Command) (*core.Config, *logrus.Logger, func() error, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := core.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := core.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

// ShellCommand runs the interactive shell until stdin is closed or the
// command is interrupted.
func ShellCommand(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	s := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), logger,
		shell.WithOffsetSource(core.NewKeyCache(cfg)),
		shell.WithOffsetDump(cfg.Debugging.DumpOffsets),
	)
	if err := s.Run(cmd.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("shell interrupted")
		} else {
			logger.WithError(err).Error("shell stopped")
		}
		return err
	}
	return nil
}
