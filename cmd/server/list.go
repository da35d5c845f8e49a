package server

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/secret"
)

// ListCmd should be used to represent the 'list' command.
type ListCmd struct {
	*cmd.BaseCmd
	Profile string
	Reveal  bool
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(logger hclog.Logger) *cobra.Command {
	c := &ListCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the MCP servers registered for a profile",
		Long: `Lists the MCP servers registered for a profile.
By default only the names of the configured fields are shown; pass --reveal
to decrypt and print their values.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID to list servers for",
	)
	cobraCommand.Flags().BoolVar(
		&c.Reveal,
		"reveal",
		false,
		"Decrypt and print the configuration values",
	)
	_ = cobraCommand.MarkFlagRequired("profile")

	return cobraCommand
}

// run is configured (via NewListCmd) to be called by the Cobra framework when
// the command is executed. It may return an error (or nil, when there is no
// error).
func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
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

	recs, err := st.ListServers(ctx, c.Profile)
	if err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintf(out, "No servers registered for profile '%s'\n", c.Profile)
		return nil
	}

	var codec *secret.Codec
	if c.Reveal {
		codec, err = c.CreateCodec()
		if err != nil {
			return err
		}
	}

	for _, rec := range recs {
		fmt.Fprintf(out, "%s (%s)", rec.Name, rec.Type)
		if rec.Description != "" {
			fmt.Fprintf(out, " - %s", rec.Description)
		}
		fmt.Fprintln(out)

		if codec != nil {
			printConfig(out, codec.DecryptRecord(rec.Encrypted, rec.ProfileID))
		} else {
			fmt.Fprintf(out, "  fields: %s\n", strings.Join(configuredFields(rec.Encrypted), ", "))
		}
	}

	return nil
}

func configuredFields(enc domain.EncryptedServerConfig) []string {
	var fields []string
	if enc.Command != "" {
		fields = append(fields, "command")
	}
	if enc.Args != "" {
		fields = append(fields, "args")
	}
	if enc.Env != "" {
		fields = append(fields, "env")
	}
	if enc.URL != "" {
		fields = append(fields, "url")
	}
	if len(fields) == 0 {
		fields = append(fields, "none")
	}

	return fields
}

func printConfig(out io.Writer, cfg domain.ServerConfig) {
	if cfg.Command != "" {
		fmt.Fprintf(out, "  command: %s\n", cfg.Command)
	}
	if len(cfg.Args) > 0 {
		fmt.Fprintf(out, "  args: %s\n", strings.Join(cfg.Args, " "))
	}
	if len(cfg.Env) > 0 {
		keys := make([]string, 0, len(cfg.Env))
		for k := range cfg.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  env: %s=%s\n", k, cfg.Env[k])
		}
	}
	if cfg.URL != "" {
		fmt.Fprintf(out, "  url: %s\n", cfg.URL)
	}
}
