package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomsim/internal/config"
	"github.com/vovakirdan/roomsim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve the room inspector over SSH",
	Long: `Start an SSH server that shows the room inspector to every client.

Each SSH connection loads its own copy of the room, so sessions step and
reload independently.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key from the config

Examples:
  roomsim serve level1.room                  # Listen on the configured address
  roomsim serve level1.room --ssh :2222      # Listen on port 2222

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(_ *cobra.Command, args []string) error {
	w, err := openWorld()
	if err != nil {
		return err
	}
	// Fail before listening if the room cannot be built at all.
	if _, err := w.requireRoom(args[0]); err != nil {
		return err
	}

	srvCfg := tui.DefaultSSHServerConfig()
	if cfg.Server.Address != "" {
		srvCfg.Address = cfg.Server.Address
	}
	if cfg.Server.HostKey != "" {
		srvCfg.HostKeyPath = config.ExpandHome(cfg.Server.HostKey)
	}
	if d := cfg.Server.IdleTimeout(); d > 0 {
		srvCfg.IdleTimeout = d
	}
	srvCfg.TickInterval = cfg.Simulation.TickInterval()
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(srvCfg, w.factory(args[0]), logger.WithPrefix("ssh"))
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Serving %s on %s\n", args[0], server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
