// Package connection manages the client's single WebSocket connection.
//
// A Manager dials a fixed URL and keeps dialing: after every closure, and
// after every failed attempt, it waits ReconnectInterval and tries again until
// Close is called. There is no retry limit.
//
// State is reported with the browser readyState values (Connecting, Open,
// Closing, Closed) plus Uninstantiated for a manager that has not been opened.
//
// # Sending
//
// Send is fire-and-forget. Text is delivered as one text frame, unchanged,
// when the connection is Open. Otherwise it is dropped and the drop is logged;
// callers never see an error.
// Texts still queued when a connection ends are discarded, never replayed on
// the next connection.
//
// # Receiving
//
// Only the most recent inbound message is kept. Every message gets the next
// sequence number, so consumers can tell a new message with the same payload
// from one they have already seen.
//
// Changes are announced on Updates, a channel with a single buffered slot.
// Signals coalesce, so a consumer should always re-read Snapshot after a
// signal instead of counting signals.
package connection
