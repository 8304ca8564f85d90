// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles connection pooling (pgxpool), schema migrations (goose, with the
// SQL files embedded in the binary), query execution, and mapping between
// domain entities and database rows.
package postgres
