// Package config loads and saves the wsdemo settings file.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/wsdemo/config.yaml or $HOME/.config/wsdemo/config.yaml
//   - macOS: $HOME/.config/wsdemo/config.yaml
//   - Windows: %LOCALAPPDATA%\wsdemo\config.yaml
//
// A missing file is not an error; Load returns Default(). Durations are
// written as Go duration strings:
//
//	version: 1
//	endpoint: ws://localhost:1323/ws
//	reconnect_interval: 5s
//	handshake_timeout: 10s
//
// # Precedence
//
// Command-line flags override WSDEMO_URL, which overrides the file, which
// overrides the defaults. Flags are applied by the command layer.
package config
