// Package store defines the persistence interfaces the engines depend on,
// along with the shared error vocabulary and transaction helpers. Concrete
// implementations live in internal/platform/postgres; tests use the
// function-field doubles in internal/mocks.
package store
