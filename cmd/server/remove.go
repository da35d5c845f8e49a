package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
)

// RemoveCmd should be used to represent the 'remove' command.
type RemoveCmd struct {
	*cmd.BaseCmd
	Profile string
}

// NewRemoveCmd creates a newly configured (Cobra) command.
func NewRemoveCmd(logger hclog.Logger) *cobra.Command {
	c := &RemoveCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "remove <server-name>",
		Short: "Removes an MCP server from a profile",
		RunE:  c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID that owns the server",
	)
	_ = cobraCommand.MarkFlagRequired("profile")

	return cobraCommand
}

// run is configured (via NewRemoveCmd) to be called by the Cobra framework
// when the command is executed. It may return an error (or nil, when there is
// no error).
func (c *RemoveCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("server name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	appCfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := c.OpenStore(ctx, appCfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RemoveServer(ctx, c.Profile, name); err != nil {
		return err
	}

	c.Logger().Debug("Server removed", "name", name, "profile", c.Profile)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Removed server '%s' from profile '%s'\n", name, c.Profile)

	return nil
}
