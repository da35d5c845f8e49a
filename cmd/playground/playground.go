// Package playground implements the 'playground' CLI command: an interactive
// chat TUI over a running daemon, backed by the adaptive session poller.
package playground

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/config"
	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/flags"
	"github.com/pluggedin/pluggedin/internal/playground"
)

// PlaygroundCmd should be used to represent the 'playground' command.
type PlaygroundCmd struct {
	*cmd.BaseCmd
	Profile string
	Addr    string
}

// NewPlaygroundCmd creates a newly configured (Cobra) command.
func NewPlaygroundCmd(logger hclog.Logger) *cobra.Command {
	c := &PlaygroundCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "playground --profile <profile-id> [--addr]",
		Short: "Opens an interactive chat session against a running daemon",
		Long: `Opens an interactive chat session against a running daemon.
Messages are sent to the daemon and the session log is tailed at an adaptive
interval, so responses appear to stream without a push channel.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID that owns the MCP servers for this session",
	)
	cobraCommand.Flags().StringVar(
		&c.Addr,
		"addr",
		"http://localhost:12005",
		"Base URL of the daemon API",
	)
	_ = cobraCommand.MarkFlagRequired("profile")

	return cobraCommand
}

// run is configured (via NewPlaygroundCmd) to be called by the Cobra framework
// when the command is executed. It may return an error (or nil, when there is
// no error).
func (c *PlaygroundCmd) run(_ *cobra.Command, _ []string) error {
	logger := c.Logger()

	profileID := strings.TrimSpace(c.Profile)
	if profileID == "" {
		return fmt.Errorf("profile id cannot be empty")
	}

	loader := config.NewValidatingLoader(&config.DefaultLoader{}, config.RequireValidAPIAddr)
	cfg, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	client := NewClient(c.Addr, logger)

	session, err := client.CreateSession(ctx, profileID)
	if err != nil {
		return err
	}

	results := make(chan domain.FetchResult, 1)
	sink := func(r domain.FetchResult) {
		// Drop the stale result rather than block the poll loop.
		for {
			select {
			case results <- r:
				return
			default:
				select {
				case <-results:
				default:
				}
			}
		}
	}

	poller, err := playground.NewPoller(logger, client, session.ID, sink, pollOptions(cfg.Poll)...)
	if err != nil {
		return err
	}

	poller.Start(ctx, false)
	defer poller.Stop()

	program := tea.NewProgram(
		newModel(logger, client, session.ID, profileID, poller, results),
		tea.WithAltScreen(),
	)

	_, runErr := program.Run()

	poller.Stop()
	close(results)

	endCtx, endCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer endCancel()
	if err := client.EndSession(endCtx, session.ID); err != nil {
		logger.Warn("Failed to end session", "session", session.ID, "error", err)
	}

	return runErr
}

// pollOptions translates configured poll tunables into poller options,
// skipping unset values so the poller defaults apply.
func pollOptions(cfg config.PollConfig) []playground.Option {
	var opts []playground.Option
	if cfg.ThinkingInterval > 0 {
		opts = append(opts, playground.WithThinkingInterval(time.Duration(cfg.ThinkingInterval)))
	}
	if cfg.BaselineInterval > 0 {
		opts = append(opts, playground.WithBaselineInterval(time.Duration(cfg.BaselineInterval)))
	}
	if cfg.Step > 0 {
		opts = append(opts, playground.WithStep(time.Duration(cfg.Step)))
	}

	return opts
}
