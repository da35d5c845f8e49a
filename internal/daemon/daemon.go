// Package daemon runs the pluggedin control plane: it connects to the MCP
// servers registered for a profile, tracks their health over MCP ping, and
// serves the HTTP API the playground polls for session logs.
package daemon

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/pluggedin/pluggedin/internal/config"
	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/secret"
	"github.com/pluggedin/pluggedin/internal/store"
)

// Daemon wires the store, the encryption codec, the MCP clients, and the API
// server together for one profile. NewDaemon should be used to create
// instances of Daemon.
type Daemon struct {
	logger        hclog.Logger
	cfg           *config.Config
	store         *store.Store
	codec         *secret.Codec
	profileID     string
	clientManager *ClientManager
	healthTracker *HealthTracker
}

// NewDaemon creates a daemon serving the given profile.
func NewDaemon(
	logger hclog.Logger,
	cfg *config.Config,
	st *store.Store,
	codec *secret.Codec,
	profileID string,
) (*Daemon, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if codec == nil {
		return nil, fmt.Errorf("codec cannot be nil")
	}
	if profileID == "" {
		return nil, fmt.Errorf("profile id cannot be empty")
	}

	return &Daemon{
		logger:        logger.Named("daemon"),
		cfg:           cfg,
		store:         st,
		codec:         codec,
		profileID:     profileID,
		clientManager: NewClientManager(),
	}, nil
}

// StartAndManage connects the profile's servers, runs the health check loop
// and the API server, and blocks until the context is canceled. All MCP
// client connections are closed on the way out.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	records, err := d.store.ListServers(ctx, d.profileID)
	if err != nil {
		return fmt.Errorf("failed to load servers for profile '%s': %w", d.profileID, err)
	}

	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	d.healthTracker = NewHealthTracker(names)

	d.logger.Info("Connecting MCP servers", "profile", d.profileID, "count", len(records))

	// Connection failures are per-server: the daemon still serves the API and
	// keeps reporting the failed server as unreachable.
	var g errgroup.Group
	for _, rec := range records {
		g.Go(func() error {
			if err := d.connectServer(ctx, rec); err != nil {
				d.logger.Error("Failed to connect MCP server", "name", rec.Name, "error", err)
				_ = d.healthTracker.Update(rec.Name, domain.HealthStatusUnreachable, nil)
			}
			return nil
		})
	}
	_ = g.Wait()

	defer d.closeClients()

	go d.healthCheckLoop(ctx, time.Duration(d.cfg.HealthCheckInterval), time.Duration(d.cfg.PingTimeout))

	apiServer, err := NewAPIServer(APIDependencies{
		Addr:          d.cfg.APIAddr,
		Servers:       d.store,
		Sessions:      d.store,
		HealthTracker: d.healthTracker,
		Codec:         d.codec,
		Logger:        d.logger,
	}, WithCORSAllowOrigins(d.cfg.CORSAllowOrigins))
	if err != nil {
		return fmt.Errorf("failed to create daemon API server: %w", err)
	}

	return apiServer.Start(ctx)
}

// connectServer decrypts a server record's configuration and establishes the
// MCP client connection for its transport.
func (d *Daemon) connectServer(ctx context.Context, rec domain.ServerRecord) error {
	cfg := d.codec.DecryptRecord(rec.Encrypted, rec.ProfileID)

	var (
		mcpClient *client.Client
		err       error
	)

	switch rec.Type {
	case domain.ServerTypeStdio:
		if cfg.Command == "" {
			return fmt.Errorf("server '%s' has no usable command", rec.Name)
		}
		env := make([]string, 0, len(cfg.Env))
		for k, v := range cfg.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		mcpClient, err = client.NewStdioMCPClient(cfg.Command, env, cfg.Args...)
		if err != nil {
			return fmt.Errorf("error starting MCP server '%s': %w", rec.Name, err)
		}
	case domain.ServerTypeSSE:
		if cfg.URL == "" {
			return fmt.Errorf("server '%s' has no usable url", rec.Name)
		}
		mcpClient, err = client.NewSSEMCPClient(cfg.URL)
		if err != nil {
			return fmt.Errorf("error creating SSE client for '%s': %w", rec.Name, err)
		}
		if err := mcpClient.Start(ctx); err != nil {
			return fmt.Errorf("error starting SSE client for '%s': %w", rec.Name, err)
		}
	case domain.ServerTypeStreamableHTTP:
		if cfg.URL == "" {
			return fmt.Errorf("server '%s' has no usable url", rec.Name)
		}
		mcpClient, err = client.NewStreamableHttpClient(cfg.URL)
		if err != nil {
			return fmt.Errorf("error creating streamable HTTP client for '%s': %w", rec.Name, err)
		}
		if err := mcpClient.Start(ctx); err != nil {
			return fmt.Errorf("error starting streamable HTTP client for '%s': %w", rec.Name, err)
		}
	default:
		return fmt.Errorf("unsupported server type '%s' for server '%s'", rec.Type, rec.Name)
	}

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	initResult, err := mcpClient.Initialize(initCtx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "pluggedin", Version: "0.1.0"},
		},
	})
	if err != nil {
		_ = mcpClient.Close()
		return fmt.Errorf("error initializing MCP client '%s': %w", rec.Name, err)
	}

	d.logger.Info(
		"MCP server connected",
		"name", rec.Name,
		"server", initResult.ServerInfo.Name,
		"version", initResult.ServerInfo.Version,
	)

	d.clientManager.Add(rec.Name, mcpClient)

	return nil
}

func (d *Daemon) closeClients() {
	for _, name := range d.clientManager.List() {
		c, ok := d.clientManager.Client(name)
		if !ok {
			continue
		}
		d.logger.Info("Closing client connection to MCP server", "name", name)
		if err := c.Close(); err != nil {
			d.logger.Error("Error closing client connection to MCP server", "name", name, "error", err)
		}
		d.clientManager.Remove(name)
	}
}

func (d *Daemon) healthCheckLoop(ctx context.Context, interval time.Duration, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.pingAllServers(ctx, timeout)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Stopping MCP server health checks")
			return
		case <-ticker.C:
			d.pingAllServers(ctx, timeout)
		}
	}
}

func (d *Daemon) pingAllServers(ctx context.Context, timeout time.Duration) {
	for _, name := range d.clientManager.List() {
		c, ok := d.clientManager.Client(name)
		if !ok {
			continue
		}

		go func(name string, mcpClient client.MCPClient) {
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			err := mcpClient.Ping(pingCtx)
			latency := time.Since(start)

			switch {
			case err == nil:
				_ = d.healthTracker.Update(name, domain.HealthStatusOK, &latency)
			case pingCtx.Err() != nil:
				_ = d.healthTracker.Update(name, domain.HealthStatusTimeout, nil)
			default:
				d.logger.Error("Error pinging MCP server", "name", name, "error", err)
				_ = d.healthTracker.Update(name, domain.HealthStatusUnreachable, nil)
			}
		}(name, c)
	}
}
