// Package versioncache remembers, per connection, the scene version last synced
// to the backing store.
//
// It only exists to skip redundant saves: if a connection asks to save a scene
// whose version equals the one it last synced, the save can be skipped. It is
// never a source of truth; reconciliation in the scene store stays authoritative.
//
// Entries live exactly as long as the connection. Callers must call Remove when a
// connection closes; nothing is collected implicitly.
package versioncache
