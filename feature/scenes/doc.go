// Package scenes persists collaborative room scenes.
//
// Each room has one encrypted snapshot row in the scenes table. Saving
// fetches the stored snapshot, decrypts it with the room key, reconciles it
// against the caller's elements and replaces the row with the merge in one
// upsert. The room key never leaves the process.
//
// A per-connection version cache skips saves of scenes that were already
// synced. The cache is only an optimization; reconciliation decides what is
// stored.
//
// Concurrent saves to one room are not serialized. Each reconciles against
// the snapshot it read, and the last upsert wins until the next save
// reconverges.
//
// # Routes
//
//   - GET    /rooms/:roomId/scene          load (X-Room-Key, optional X-Connection-ID)
//   - PUT    /rooms/:roomId/scene          save (X-Room-Key, X-Connection-ID)
//   - DELETE /connections/:connectionId    forget a closed connection
package scenes
