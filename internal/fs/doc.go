// Package fs holds the filesystem primitives the browser core is built on:
// the Entry type with its display metadata, the listing pipeline
// (enumerate, sort, hidden-file policy, substring filter), the error
// taxonomy shared by every mutating component, and the move/copy helpers
// used by the clipboard, trash, and undo machinery.
//
// Entries are recomputed from disk on every listing; nothing in this
// package caches state between calls.
package fs
