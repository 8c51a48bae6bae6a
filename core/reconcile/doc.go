// Package reconcile merges two versions of a scene into one convergent scene.
//
// The engine builds the union of element ids from a local and a remote scene.
// Ids present on one side only are kept as-is. For ids present on both sides a
// single winner is selected from the element headers:
//
//  1. higher version wins
//  2. on equal version, higher versionNonce wins
//  3. on equal version and nonce, the tombstone wins
//  4. then the later updated timestamp wins
//
// Winner selection is independent of argument order. Tombstones are kept in the
// output; compaction is left to callers.
//
// # Ordering
//
// The output keeps the local order for ids that existed locally and appends
// remote-only ids in their remote order, so the local stacking order stays stable.
//
// # Properties
//
//   - deterministic: equal inputs give equal outputs
//   - idempotent: Reconcile(Reconcile(a, b), b) equals Reconcile(a, b)
//
// # Usage
//
//	merged := reconcile.Reconcile(localScene, remoteScene)
//
//	// With counts for logging
//	merged, summary := reconcile.Merge(localScene, remoteScene)
package reconcile
