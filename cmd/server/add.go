// Package server implements the 'server' resource commands: registering,
// listing, removing, sharing, and importing MCP server configurations.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/domain"
)

// AddCmd should be used to represent the 'add' command.
type AddCmd struct {
	*cmd.BaseCmd
	Profile     string
	Type        string
	Description string
	Command     string
	URL         string
	Args        []string
	Env         []string
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(logger hclog.Logger) *cobra.Command {
	c := &AddCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "add <server-name>",
		Short: "Registers an MCP server for a profile",
		Long: `Registers an MCP server for a profile.
The configuration fields (command, args, env, url) are encrypted with a
profile-scoped key before they are stored; nothing sensitive is persisted in
plaintext.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID that owns the server",
	)
	cobraCommand.Flags().StringVar(
		&c.Type,
		"type",
		string(domain.ServerTypeStdio),
		"Transport type (stdio, sse, streamable_http)",
	)
	cobraCommand.Flags().StringVar(
		&c.Description,
		"description",
		"",
		"Optional free-form description",
	)
	cobraCommand.Flags().StringVar(
		&c.Command,
		"cmd",
		"",
		"Command to launch a stdio server",
	)
	cobraCommand.Flags().StringVar(
		&c.URL,
		"url",
		"",
		"Endpoint URL for sse and streamable_http servers",
	)
	cobraCommand.Flags().StringArrayVar(
		&c.Args,
		"arg",
		nil,
		"Command argument (can be repeated)",
	)
	cobraCommand.Flags().StringArrayVar(
		&c.Env,
		"env",
		nil,
		"Environment variable as KEY=VALUE (can be repeated)",
	)
	_ = cobraCommand.MarkFlagRequired("profile")

	return cobraCommand
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when
// the command is executed. It may return an error (or nil, when there is no
// error).
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("server name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	serverType := domain.ServerType(c.Type)
	cfg, err := buildConfig(serverType, c.Command, c.Args, c.Env, c.URL)
	if err != nil {
		return err
	}

	codec, err := c.CreateCodec()
	if err != nil {
		return err
	}

	enc, err := codec.EncryptRecord(cfg, c.Profile)
	if err != nil {
		return err
	}

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

	id, err := st.UpsertServer(ctx, domain.ServerRecord{
		ProfileID:   c.Profile,
		Name:        name,
		Description: c.Description,
		Type:        serverType,
		Encrypted:   enc,
	})
	if err != nil {
		return err
	}

	c.Logger().Debug("Server added", "id", id, "name", name, "profile", c.Profile, "type", serverType)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added server '%s' (type: %s) to profile '%s'\n", name, serverType, c.Profile)

	return nil
}

// buildConfig assembles and validates a plaintext config for the transport.
func buildConfig(serverType domain.ServerType, command string, args []string, env []string, url string) (domain.ServerConfig, error) {
	cfg := domain.ServerConfig{
		Command: strings.TrimSpace(command),
		Args:    args,
		URL:     strings.TrimSpace(url),
	}

	if len(env) > 0 {
		cfg.Env = make(map[string]string, len(env))
		for _, pair := range env {
			key, value, found := strings.Cut(pair, "=")
			if !found || strings.TrimSpace(key) == "" {
				return domain.ServerConfig{}, fmt.Errorf("invalid env entry '%s', expected KEY=VALUE", pair)
			}
			cfg.Env[strings.TrimSpace(key)] = value
		}
	}

	switch serverType {
	case domain.ServerTypeStdio:
		if cfg.Command == "" {
			return domain.ServerConfig{}, fmt.Errorf("--cmd is required for stdio servers")
		}
	case domain.ServerTypeSSE, domain.ServerTypeStreamableHTTP:
		if cfg.URL == "" {
			return domain.ServerConfig{}, fmt.Errorf("--url is required for %s servers", serverType)
		}
	default:
		return domain.ServerConfig{}, fmt.Errorf("unsupported server type '%s'", serverType)
	}

	return cfg, nil
}
