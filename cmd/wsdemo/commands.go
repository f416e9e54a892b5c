package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wsdemo/internal/config"
	"github.com/muurk/wsdemo/internal/connection"
	"github.com/muurk/wsdemo/internal/discovery"
	"github.com/muurk/wsdemo/internal/logging"
	"github.com/muurk/wsdemo/internal/tui"
	"github.com/muurk/wsdemo/internal/ui"
	"github.com/muurk/wsdemo/internal/urls"
)

// Command flags
var (
	sendTimeout time.Duration
	scanTimeout time.Duration
	forceInit   bool
)

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// sendCmd sends one text without the interactive screen
var sendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send one text and print the server's reply",
	Long: `Connect to the endpoint, send a single text message and print the next
message the server sends back.

The text is sent exactly as given. Blank text (empty or whitespace only)
is rejected, the same as in the interactive client. Multiple arguments
are joined with single spaces.`,
	Example: `  # Send to the default endpoint
  wsdemo send "Hello"

  # Give a slow server more time
  wsdemo send --timeout 30s ping`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 10*time.Second, "How long to wait for the connection and the reply")
}

func runSend(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if !tui.Sendable(text) {
		return fmt.Errorf("refusing to send blank text")
	}
	cmd.SilenceUsage = true

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Send Message", "wsdemo send",
		ui.Detail{Key: "Endpoint", Value: settings.Endpoint},
		ui.Detail{Key: "Timeout", Value: sendTimeout.String()},
	)

	conn := newManager(settings)
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout)
	defer cancel()

	reply, err := sendAndWait(ctx, conn, text)
	if err != nil {
		p.PrintError("Send failed", err, []string{
			"Check that a WebSocket server is listening on " + settings.Endpoint,
			"Increase --timeout for slow servers",
			"Use 'wsdemo scan' to look for endpoints on the local network",
			"See " + urls.Troubleshooting,
		})
		return err
	}

	p.PrintSuccess("Reply received",
		ui.Detail{Key: "Sent", Value: strconv.Itoa(len(text)) + " bytes"},
		ui.Detail{Key: "Received", Value: strconv.Itoa(len(reply.Data)) + " bytes"},
		ui.Detail{Key: "At", Value: reply.ReceivedAt.Format(time.RFC3339)},
	)
	p.Println(tui.ServerMessageLine(reply.Data))
	return nil
}

// sendAndWait opens conn, sends text once the connection is open and returns
// the first message received after the send.
func sendAndWait(ctx context.Context, conn tui.Connection, text string) (connection.Message, error) {
	conn.Open()

	if err := waitUntil(ctx, conn, func(s connection.Snapshot) bool {
		return s.State == connection.Open
	}); err != nil {
		return connection.Message{}, fmt.Errorf("connection did not open: %w", err)
	}

	var seen uint64
	if last := conn.Snapshot().LastMessage; last != nil {
		seen = last.Seq
	}
	conn.Send(text)

	var reply connection.Message
	if err := waitUntil(ctx, conn, func(s connection.Snapshot) bool {
		if s.LastMessage != nil && s.LastMessage.Seq > seen {
			reply = *s.LastMessage
			return true
		}
		return false
	}); err != nil {
		return connection.Message{}, fmt.Errorf("no reply from server: %w", err)
	}
	return reply, nil
}

// waitUntil blocks until cond holds for the current snapshot or ctx ends.
func waitUntil(ctx context.Context, conn tui.Connection, cond func(connection.Snapshot) bool) error {
	for {
		if cond(conn.Snapshot()) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-conn.Updates():
		}
	}
}

// scanCmd lists WebSocket endpoints advertised on the local network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for WebSocket endpoints on the network",
	Long: `Scan for WebSocket endpoints using mDNS/DNS-SD discovery.

This command browses for _ws._tcp services and prints the ws:// URL of
each one found. Pass a URL to the client with --url.`,
	Example: `  # Scan for 5 seconds (default)
  wsdemo scan

  # Longer scan for busy networks
  wsdemo scan --timeout 15s`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", discovery.DefaultScanTimeout, "Scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Endpoint Scan", "wsdemo scan",
		ui.Detail{Key: "Service", Value: discovery.ServiceType},
		ui.Detail{Key: "Timeout", Value: scanTimeout.String()},
	)

	scanner := discovery.NewScanner()
	scanner.Timeout = scanTimeout

	endpoints, err := scanner.Scan(cmd.Context())
	if err != nil {
		p.PrintError("Scan failed", err, []string{
			"Check that multicast traffic is allowed on this network",
			"See " + urls.Troubleshooting,
		})
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(endpoints) == 0 {
		p.PrintWarning("No endpoints found",
			ui.Detail{Key: "Default", Value: config.DefaultEndpoint},
			ui.Detail{Key: "Help", Value: urls.EchoServer},
		)
		return nil
	}

	details := make([]ui.Detail, 0, len(endpoints))
	for _, e := range endpoints {
		details = append(details, ui.Detail{Key: e.Instance, Value: e.URL()})
	}
	p.PrintSuccess(fmt.Sprintf("Found %d endpoint(s)", len(endpoints)), details...)
	p.Println("Use 'wsdemo --url <url>' to connect to one of them")

	logging.Debug("Scan complete", zap.Int("endpoints", len(endpoints)))
	return nil
}

// configCmd groups the config file helpers. It skips the root's settings
// resolution so a broken config file can still be located and replaced.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
	Long: `Inspect or create the wsdemo config file.

Settings are resolved in this order, highest first: command-line flags,
the ` + config.EndpointEnvVar + ` environment variable, the config file, defaults.

See ` + urls.Configuration,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logging.Options{Level: logLevel, File: logFile})
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := effectiveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		data, err := s.Marshal()
		if err != nil {
			return fmt.Errorf("failed to render settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Example: `  # Create the default config file
  wsdemo config init

  # Start over with defaults
  wsdemo config init --force`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	path, err := effectiveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Config file written",
		ui.Detail{Key: "Path", Value: path},
		ui.Detail{Key: "Endpoint", Value: config.DefaultEndpoint},
	)
	return nil
}

func effectiveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
