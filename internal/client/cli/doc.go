// Package cli provides the interactive product catalog client.
//
// It wires configuration, the snapshot cache, the API client and the
// synchronizer, and runs a REPL on top of them. Typical flow: restore the
// cached list, fetch the remote one, optionally keep refreshing in the
// background, then execute user commands until exit.
//
// Commands:
//   - list / refresh / export
//   - new, edit <id>, name, price, desc, image <path>, draft
//   - submit, cancel, delete <id>
//
// The REPL is started via App.Run(ctx). See runREPL for the dispatch rules.
package cli
