package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/daemon"
	"github.com/pluggedin/pluggedin/internal/flags"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	Profile string
	Addr    string
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(logger hclog.Logger) *cobra.Command {
	c := &DaemonCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "daemon --profile <profile-id> [--addr]",
		Short: "Launches a pluggedin daemon instance",
		Long: `Launches a pluggedin daemon instance, which connects the profile's MCP
servers, tracks their health, and serves the HTTP API used by the playground.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID whose servers the daemon should connect",
	)
	cobraCommand.Flags().StringVar(
		&c.Addr,
		"addr",
		"",
		"Address for the daemon to bind (overrides the config file)",
	)
	_ = cobraCommand.MarkFlagRequired("profile")

	return cobraCommand
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework
// when the command is executed. It may return an error (or nil, when there is
// no error).
func (c *DaemonCmd) run(_ *cobra.Command, _ []string) error {
	logger := c.Logger()

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		cfg.APIAddr = addr
	}

	codec, err := c.CreateCodec()
	if err != nil {
		return fmt.Errorf("set %s to the base encryption secret: %w", flags.EnvVarSecret, err)
	}

	// Signal handling context for the daemon lifetime.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	st, err := c.OpenStore(daemonCtx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := daemon.NewDaemon(logger, cfg, st, codec, c.Profile)
	if err != nil {
		return fmt.Errorf("failed to create daemon instance: %w", err)
	}

	runErr := make(chan error, 1)
	go func() {
		if err := d.StartAndManage(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		err := <-runErr // Wait for cleanup and deferred logging.
		return err
	case err := <-runErr:
		return err
	}
}
