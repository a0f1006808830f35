// Package engine implements the tracked key-value store and its
// journal.
//
// Every mutation (set, delete, revert) flows through the Store's own
// entry points; there is no other write path. Sets and deletes append a
// ChangeRecord capturing the state they replaced, which lets Revert
// undo the most recent mutations in strict LIFO order, including
// removing keys that did not exist before the recorded mutation.
//
//	Write path:  caller -> commit log (append) -> data + history
//	Boot path:   commit log (load) -> replay through the same transitions
//
// The commit log is append-only: a revert is journaled as its own
// record rather than rewriting the file, and replay reproduces the pop.
// Sequence numbers, record IDs, and timestamps are preserved across
// restarts, so the history a caller observes does not depend on how
// often the process has been restarted.
package engine
