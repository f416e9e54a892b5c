// Wsdemo is a minimal WebSocket demo client.
//
// It keeps one connection to a local endpoint (ws://localhost:1323/ws by
// default) open, reconnecting whenever it drops, and shows an interactive
// screen for sending text and viewing the last message from the server.
//
// Usage:
//
//	wsdemo [command] [flags]
//
// Running without arguments launches the interactive client.
// See 'wsdemo --help' for available commands.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wsdemo/internal/config"
	"github.com/muurk/wsdemo/internal/connection"
	"github.com/muurk/wsdemo/internal/logging"
	"github.com/muurk/wsdemo/internal/tui"
	"github.com/muurk/wsdemo/internal/urls"
	"github.com/muurk/wsdemo/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	endpointURL       string
	reconnectInterval time.Duration
	logLevel          string
	logFile           string
	configPath        string
	noAltScreen       bool
)

// settings holds the effective configuration once PersistentPreRunE has run.
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "wsdemo",
	Short: "WebSocket Demo Client",
	Long: `A minimal WebSocket demo client.

Connects to a WebSocket endpoint, reconnecting whenever the connection
drops, and lets you type text and send it to the server. The last
message received from the server is shown below the connection status.

The send button and text field are only usable while the connection
is open.

If no command is specified, the interactive client launches.`,
	Version: version.Version,
	Example: `  # Connect to the default endpoint (ws://localhost:1323/ws)
  wsdemo

  # Connect elsewhere, retrying every second
  wsdemo --url ws://192.168.1.20:1323/ws --reconnect-interval 1s

  # Keep debug logs out of the terminal
  wsdemo --log-level debug --log-file /tmp/wsdemo.log`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		settings = s
		return initLogging(s)
	},
	RunE: runClient,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&endpointURL, "url", config.DefaultEndpoint, "WebSocket endpoint to connect to")
	rootCmd.PersistentFlags().DurationVar(&reconnectInterval, "reconnect-interval", config.DefaultReconnectInterval, "Pause before each reconnection attempt")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config directory)")

	rootCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "Render inline instead of using the alternate screen")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wsdemo %s\n%s\n", version.Full(), urls.Repository)
	},
}

// resolveSettings loads the config file and applies flags on top of it.
// Flags win over the environment, which wins over the file.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	s, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		s.Endpoint = endpointURL
	}
	if flags.Changed("reconnect-interval") {
		s.ReconnectInterval = reconnectInterval
	}
	if flags.Changed("log-level") {
		s.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		s.Logging.File = logFile
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func initLogging(s *config.Settings) error {
	opts := logging.Options{}
	if s.Logging != nil {
		opts.Level = s.Logging.Level
		opts.File = s.Logging.File
	}
	return logging.Initialize(opts)
}

// newManager builds a connection manager for the effective settings.
func newManager(s *config.Settings) *connection.Manager {
	var header http.Header
	if s.Origin != "" {
		header = http.Header{}
		header.Set("Origin", s.Origin)
	}
	return connection.New(s.Endpoint, connection.Options{
		ReconnectInterval: s.ReconnectInterval,
		HandshakeTimeout:  s.HandshakeTimeout,
		Header:            header,
	})
}

func runClient(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if settings.Logging.Level != "" && settings.Logging.File == "" && os.Getenv(logging.LogFileEnvVar) == "" {
		fmt.Fprintln(os.Stderr, "Warning: logs go to stderr and will mix with the screen; use --log-file")
	}

	logging.Info("Starting client",
		zap.String("url", settings.Endpoint),
		zap.Duration("reconnect_interval", settings.ReconnectInterval),
		zap.String("version", version.Full()),
	)

	return tui.Run(newManager(settings), tui.RunOptions{
		AltScreen: !noAltScreen,
	})
}
