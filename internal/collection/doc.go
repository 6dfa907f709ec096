// Package collection keeps in-memory record sequences in step with the store.
//
// A Collection[T] is an ordered slice of records plus the store write that
// makes an insert durable. The two layers never diverge:
//   - Insert appends in memory, then writes; a failed write removes the append
//   - DeleteByName deletes in the store first and only then filters memory
//   - SortBy reorders memory only and never touches the store
//
// Bookings and Customers are the two concrete collections. Bookings can be
// deleted by guest name and re-sorted by a SortKey; Customers are insert-only.
//
// Nothing here is safe for concurrent use. innkeep runs one operation at a
// time, so callers need no locking.
package collection
