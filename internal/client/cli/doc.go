// Package cli provides the interactive bcard command-line client.
//
// It wires configuration, local storage, the API client and services, and
// an interactive REPL. Typical flow: restore the saved session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, with the session kept across restarts
//   - Browse and search business cards, page by page
//   - Like cards and list favorites
//   - Create cards (business accounts)
//   - View and edit the own profile
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// help only lists commands the current user may run; gated commands print a
// login hint instead of calling the API.
package cli
