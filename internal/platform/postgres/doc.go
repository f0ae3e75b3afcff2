// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so it can run over either a
// connection pool or an open transaction, and maps driver errors to the
// store package's sentinel errors via MapError.
package postgres
