// Package cli provides the interactive userkeeper command-line client.
//
// It wires configuration, the OS keyring, the local preference database and
// the stored-user coordinator, then runs a REPL for inspecting and editing
// the stored user and the recorded access group.
//
// At start-up the App migrates an access group recorded by an older release
// and restores the scope (recorded access group plus the configured project
// and sync flag) that later commands act on. The REPL is started with
// App.Run(ctx), which blocks until the user exits.
package cli
