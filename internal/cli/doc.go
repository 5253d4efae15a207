// Package cli is the interactive terminal front end of the bucket list.
//
// It wires configuration, the local database, the destination store and a
// REPL. The REPL forwards commands to the store, re-renders the list whenever
// the store reports a change, and turns store errors into short notices:
//
//   - help                 show available commands
//   - add [name]           add a destination (prompts when name is omitted)
//   - (l)ist               show the list
//   - toggle <ref>         mark visited / unvisited
//   - delete | rm <ref>    remove a destination
//   - exit | quit          leave the program
//
// <ref> is either a destination id or its 1-based position in the list.
package cli
