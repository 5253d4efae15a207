// Package models defines the destination record shared by the store, the
// persistence gateway and the REPL, together with the sentinel errors the
// presentation layer turns into user-visible notices.
package models
