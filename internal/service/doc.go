// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
//   - UserService: registration, authentication and profile management.
//   - CategoryService: the category registry and its per-category product counters.
//   - ProductService: product listings, browsing and owner-only edits.
//
// Writes that touch more than one table (a product and its category counter)
// run through a store.Transactor so they commit or roll back together.
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
