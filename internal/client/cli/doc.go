// Package cli provides the interactive ReadDaily command-line client.
//
// It wires configuration, the local SQLite store, the remote or local
// service and an interactive REPL. In remote mode a background watcher
// probes the server and the prompt shows whether it is reachable.
//
// Key features:
//   - Register / Login / Logout
//   - Daily feed, mark read, profile and category preferences
//   - Likes, comments, sharing and recommendations (remote mode)
//   - History export download, catalog import and content automation
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
