// Package health reports whether the backing stores of scene-sync are usable.
//
// It checks that the database answers, that the scenes table carries every
// column of the snapshot model, and that the files bucket exists. With fix,
// the table is migrated and the bucket created.
package health
