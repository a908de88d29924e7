// Package graphstore holds the authoritative client-side copy of the graph
// and runs every Backend Gateway operation.
//
// Network operations are bubbletea commands: each method returns a tea.Cmd
// that performs the request off the event loop and reports a result message.
// [Store.Update] applies those messages on the event loop, which is the only
// place the store's state changes. No locks are needed.
//
// # Failure Policy
//
// A failed fetch keeps the previous snapshot. Failed mutations are logged
// and not retried or rolled back. Validation failures are returned
// synchronously and never reach the network.
//
// # Ordering
//
// Requests are not sequenced. When two fetches overlap, whichever response
// arrives last replaces the snapshot, even if it answers the older request.
package graphstore
