// Package store provides SQLite-backed durable storage for bookings and
// customers.
//
// The store owns two tables:
//   - bookings: one row per reservation (name, room, dates, housekeeper 0/1, cost)
//   - customers: one row per billed customer (uname, uId, cost)
//
// Every row carries an AUTOINCREMENT surrogate id. The id orders loads
// (insertion order) and is never returned to callers.
//
// # Statement Model
//
//   - Every statement autocommits; there are no multi-statement transactions
//   - Deletion matches on the guest name column and removes EVERY matching row
//   - A delete that matches nothing succeeds
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - One open connection, held for the process lifetime
//
// Failures surface as *InitError (opening, schema) or *WriteError (insert,
// delete). Use IsInitError and IsWriteError to classify wrapped errors.
package store
