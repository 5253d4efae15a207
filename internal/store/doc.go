// Package store owns the in-memory destination list and the rules for
// changing it.
//
// A Store is created with New, hydrated once with Initialize, and stopped
// with Teardown. Between the two every successful mutation (Add,
// ToggleVisited, Delete) updates the list synchronously, notifies OnChange
// subscribers with a snapshot, and schedules that same post-mutation snapshot
// for saving through the persistence gateway. Saves happen in the background;
// Flush forces them. Nothing is saved before Initialize has finished loading,
// so an empty in-memory list can never overwrite saved data.
//
// Errors are values, never panics:
//
//   - Add with a blank name returns an error wrapping models.ErrValidation.
//   - Initialize returns an error wrapping models.ErrStorageRead when the saved
//     list cannot be read; the store still becomes ready with an empty list.
//   - Failed background saves are delivered to OnError subscribers wrapping
//     models.ErrStorageWrite; the in-memory list stays authoritative.
//
// ToggleVisited and Delete on an unknown id are no-ops.
package store
