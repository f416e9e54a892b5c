// Package tui implements the interactive wsdemo client screen.
//
// The screen is a single Bubble Tea model bound to one connection. It holds
// two pieces of state: the draft being typed and the text of the most recent
// message from the server. The connection's ready state decides whether the
// text field and the send button are usable; they are enabled only while the
// connection is Open.
//
// # Lifecycle
//
// The model receives its connection from the caller. Init opens it, and Run
// closes it after the program exits:
//
//	conn := connection.New("ws://localhost:1323/ws", connection.Options{})
//	err := tui.Run(conn, tui.RunOptions{AltScreen: true})
//
// # Keys
//
//   - ctrl+s: send the draft
//   - tab: move focus between the text field and the button
//   - enter: newline in the text field, press when the button has focus
//   - esc, ctrl+c: quit
//
// Blank drafts (empty or whitespace only) are never sent. Sending does not
// clear the draft, so the same text can be sent again.
//
// The draft has no character limit. The text field itself holds at most
// 10000 lines, a fixed cap of the bubbles textarea; lines pasted beyond it
// are dropped.
//
// # Updates
//
// Connection changes reach the model as snapshots. When several messages
// arrive between two snapshots only the latest is shown.
package tui
