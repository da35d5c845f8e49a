package server

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/secret"
	"github.com/pluggedin/pluggedin/internal/share"
)

// ShareCmd should be used to represent the 'share' command.
type ShareCmd struct {
	*cmd.BaseCmd
	Profile string
	Output  string
}

// NewShareCmd creates a newly configured (Cobra) command.
func NewShareCmd(logger hclog.Logger) *cobra.Command {
	c := &ShareCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "share <server-name>",
		Short: "Exports a credential-free YAML template for a server",
		Long: `Exports a credential-free YAML template for a server.
The template names which fields the recipient must supply themselves; no
secret material, encrypted or otherwise, leaves the store.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID that owns the server",
	)
	cobraCommand.Flags().StringVar(
		&c.Output,
		"output",
		"",
		"Write the template to a file instead of stdout",
	)
	_ = cobraCommand.MarkFlagRequired("profile")

	return cobraCommand
}

// run is configured (via NewShareCmd) to be called by the Cobra framework when
// the command is executed. It may return an error (or nil, when there is no
// error).
func (c *ShareCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	rec, err := st.Server(ctx, c.Profile, name)
	if err != nil {
		return err
	}

	data, err := share.ExportYAML(secret.SanitizeForSharing(rec))
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, data, 0o600); err != nil {
			return fmt.Errorf("failed to write template to '%s': %w", c.Output, err)
		}
		fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Wrote share template for '%s' to %s\n", name, c.Output)
		return nil
	}

	fmt.Fprint(cobraCmd.OutOrStdout(), string(data))

	return nil
}
