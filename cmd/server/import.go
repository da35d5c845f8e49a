package server

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pluggedin/pluggedin/internal/cmd"
	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/share"
)

// ImportCmd should be used to represent the 'import' command.
type ImportCmd struct {
	*cmd.BaseCmd
	Profile string
	Command string
	URL     string
	Args    []string
	Env     []string
}

// NewImportCmd creates a newly configured (Cobra) command.
func NewImportCmd(logger hclog.Logger) *cobra.Command {
	c := &ImportCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "import <template-file>",
		Short: "Registers a server from a shared template",
		Long: `Registers a server from a shared template.
Shared templates carry no credentials; every field the template marks as
required must be supplied via flags and is encrypted before storage.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Profile,
		"profile",
		"",
		"Profile ID to register the server under",
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

// run is configured (via NewImportCmd) to be called by the Cobra framework
// when the command is executed. It may return an error (or nil, when there is
// no error).
func (c *ImportCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("template file is required")
	}
	path := strings.TrimSpace(args[0])

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template '%s': %w", path, err)
	}

	tmpl, err := share.ParseTemplate(raw)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(tmpl.Type, c.Command, c.Args, c.Env, c.URL)
	if err != nil {
		return err
	}
	if missing := missingRequiredFields(tmpl.RequiredFields, cfg); len(missing) > 0 {
		return fmt.Errorf("template requires fields not supplied: %s", strings.Join(missing, ", "))
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
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Type:        tmpl.Type,
		Encrypted:   enc,
	})
	if err != nil {
		return err
	}

	c.Logger().Debug("Server imported", "id", id, "name", tmpl.Name, "profile", c.Profile)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Imported server '%s' into profile '%s'\n", tmpl.Name, c.Profile)

	return nil
}

// missingRequiredFields reports which of the template's required fields were
// not provided.
func missingRequiredFields(required []string, cfg domain.ServerConfig) []string {
	var missing []string
	for _, field := range required {
		switch field {
		case "command":
			if cfg.Command == "" {
				missing = append(missing, field)
			}
		case "args":
			if len(cfg.Args) == 0 {
				missing = append(missing, field)
			}
		case "env":
			if len(cfg.Env) == 0 {
				missing = append(missing, field)
			}
		case "url":
			if cfg.URL == "" {
				missing = append(missing, field)
			}
		}
	}

	return missing
}
