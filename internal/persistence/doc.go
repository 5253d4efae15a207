// Package persistence saves and loads the whole destination list as one JSON
// blob under a fixed key of the local key/value store.
//
// Gateway is the synchronous load/save boundary. Saver sits in front of it and
// writes in the background: every mutation schedules the post-mutation
// snapshot, bursts are coalesced, and whatever is written is always the most
// recently scheduled snapshot. Flush forces the pending snapshot out, Close
// stops the background writer after a final flush.
//
// The stored value is the serialized list and nothing else:
//
//	[{"id":"6f1c…","name":"Paris","visited":false}]
//
// Read failures wrap models.ErrStorageRead; write failures wrap
// models.ErrStorageWrite.
package persistence
