// Package storage is the console's durable client storage: a single-file
// SQLite database holding a key/value metadata table.
//
// InitDatabase opens the database with the pure-Go driver and applies the
// embedded goose migrations. Repository is the key/value view used by the
// session store to persist the bearer token and the user profile.
//
// Contract of the key/value operations:
//   - Get on a missing key returns (nil, nil).
//   - Set upserts.
//   - Delete is idempotent.
//   - InTx runs several operations atomically.
package storage
