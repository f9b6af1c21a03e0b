// ABOUTME: Entry point for notes-server
// ABOUTME: Serves the notes API and web UI, and checks the health of a running instance

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2389/notes-server/internal/config"
	"github.com/2389/notes-server/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
             _
 _ __   ___ | |_ ___  ___       ___  ___ _ ____   _____ _ __
| '_ \ / _ \| __/ _ \/ __|_____/ __|/ _ \ '__\ \ / / _ \ '__|
| | | | (_) | ||  __/\__ \_____\__ \  __/ |   \ V /  __/ |
|_| |_|\___/ \__\___||___/     |___/\___|_|    \_/ \___|_|
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notes-server",
		Short: "In-memory notes REST service with a small web UI",
		Long: `notes-server keeps short text notes in memory and exposes them over
a JSON API at /api/notes, alongside a static web UI.

Configuration comes from NOTES_CONFIG (or ./notes.yaml) and the PORT
environment variable.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the notes server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check the health of a running notes server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runHealth(cmd.Context())
			},
		},
	)

	return root
}

func runServe(ctx context.Context) error {
	configPath := config.Path()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	// Version info
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging, os.Stdout)

	// Startup info
	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	if configPath == "" {
		fmt.Println("Config:    (defaults)")
	} else {
		fmt.Printf("Config:    %s\n", configPath)
	}
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      http://localhost:%d\n", cfg.Server.Port)
	green.Print("    ▶ ")
	fmt.Printf("Store:     %s\n", cfg.Store.Backend)
	green.Print("    ▶ ")
	if cfg.Static.Dir == "" {
		fmt.Println("Static:    (embedded)")
	} else {
		fmt.Printf("Static:    %s\n", cfg.Static.Dir)
	}
	fmt.Println()

	logger.Info("starting notes-server",
		"config", configPath,
		"http_addr", cfg.Addr(),
		"store", cfg.Store.Backend,
	)

	notes, err := server.OpenStore(cfg)
	if err != nil {
		return err
	}

	return server.New(cfg, notes, logger).Run(ctx)
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := checkHealth(ctx, healthURL(cfg)); err != nil {
		return err
	}

	fmt.Println("healthy")
	return nil
}

// healthURL points at the local health endpoint; wildcard hosts are
// reached through loopback.
func healthURL(cfg *config.Config) string {
	host := cfg.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Server.Port)) + "/health"
}

// checkHealth requests url and reports an error unless it answers 200.
func checkHealth(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
