package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/cmd/playground"
	"github.com/pluggedin/pluggedin/cmd/server"
	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() error {
	logger, err := configureLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error configuring logger: %s\n", err)
		os.Exit(1)
	}

	rootCmd := NewRootCmd(logger)

	return rootCmd.Execute()
}

// NewRootCmd creates the 'pluggedin' root command with all subcommands attached.
func NewRootCmd(logger hclog.Logger) *cobra.Command {
	c := &RootCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	rootCmd := &cobra.Command{
		Use:          "pluggedin <command> [args]",
		Short:        "'pluggedin' manages encrypted MCP server configurations and chat sessions.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewDaemonCmd(logger))
	rootCmd.AddCommand(playground.NewPlaygroundCmd(logger))

	serverCmd := &cobra.Command{
		Use:   "server <command> [args]",
		Short: "Manage the MCP servers registered for a profile",
	}
	serverCmd.AddCommand(server.NewAddCmd(logger))
	serverCmd.AddCommand(server.NewRemoveCmd(logger))
	serverCmd.AddCommand(server.NewListCmd(logger))
	serverCmd.AddCommand(server.NewShareCmd(logger))
	serverCmd.AddCommand(server.NewImportCmd(logger))
	rootCmd.AddCommand(serverCmd)

	return rootCmd
}

func (c *RootCmd) longDescription() string {
	return `The 'pluggedin' CLI registers MCP servers per profile with their sensitive
configuration fields encrypted at rest, runs the daemon that connects them,
and opens playground chat sessions against a running daemon.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If PLUGGEDIN_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "pluggedin",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
