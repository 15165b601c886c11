// Package library persists albums, their tracks, and the durable
// action-code table in SQLite.
//
// The Store manages the database connection, schema initialization,
// and album CRUD. It also provides the transactional execution context
// the oid allocators require: WithAllocTx runs an allocation against a
// transaction-scoped view of the identifier state, serialized against
// concurrent allocations, and the duplicate-insert race the oid
// contract allows for is retried exactly once before being escalated.
//
// Treat this package as the single source of truth for library
// semantics; schema changes go into schema.sql with a schemaVersion
// bump.
package library
