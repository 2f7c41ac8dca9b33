package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-deal/internal/platform/tui"
	"github.com/vovakirdan/tui-deal/internal/status"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeHTTP   string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a banker menu. Results are
stored per server, so all players share the same leaderboard. With --http
(or status.enabled in the config) the live state of every session is served
as JSON.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key_path from the config (default ~/.deal/host_key)

Examples:
  deal serve                           # Listen on :23234
  deal serve --ssh :2222               # Listen on port 2222
  deal serve --http 127.0.0.1:8089     # Also serve live state
  deal serve --db ./results.db         # Use specific database

Users can connect with:
  ssh -t localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (empty = config value)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (empty = config value)")
	serveCmd.Flags().StringVar(&flagServeHTTP, "http", "", "Status endpoint address (empty = config value when enabled)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (0 = config value)")
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, settings.Log.Level, "deal")

	cfg := tui.SSHServerConfig{
		Address:     settings.SSH.Address,
		HostKeyPath: settings.SSH.HostKeyPath,
		IdleTimeout: settings.SSH.IdleTimeout,
		TickRate:    settings.TickRate,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	store := openStore(settings.Storage.Path)
	if store != nil {
		defer store.Close()
	}

	hub := status.NewHub(nil)
	server, err := tui.NewSSHServer(cfg,
		tui.WithSSHStore(store),
		tui.WithSessionHub(hub),
		tui.WithSSHLogger(logger.WithPrefix("ssh")),
	)
	if err != nil {
		return err
	}

	httpAddr := flagServeHTTP
	if httpAddr == "" && settings.Status.Enabled {
		httpAddr = settings.Status.Address
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Connect with: ssh -t localhost -p %s\n", portOf(cfg.Address))
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	if httpAddr != "" {
		opts := []status.ServerOption{status.WithLogger(logger.WithPrefix("status"))}
		if store != nil {
			opts = append(opts, status.WithResults(store))
		}
		statusServer := status.NewServer(httpAddr, hub, opts...)
		g.Go(func() error {
			return statusServer.ListenAndServe(ctx)
		})
	}
	return g.Wait()
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
