// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Implementations live in internal/platform/postgres. Every store can be
// bound to a pgx transaction with WithTx so that services can group writes
// across stores (for example a product insert and its category counter
// adjustment) into one atomic unit through a Transactor.
package store
