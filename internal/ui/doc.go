// Package ui renders the boxed output of the non-interactive wsdemo commands
// (send, scan, config). The interactive client lives in package tui.
//
// Output is sized to the terminal with golang.org/x/term, clamped between
// MinTerminalWidth and MaxContentWidth. When stdout is not a terminal the
// minimum width is used.
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Send", "wsdemo send",
//	    ui.Detail{Key: "Endpoint", Value: "ws://localhost:1323/ws"})
//	p.PrintSuccess("Reply received",
//	    ui.Detail{Key: "Server message", Value: "[pong]"})
package ui
