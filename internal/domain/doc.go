// Package domain contains the core business entities, value objects, and
// domain logic of the marketplace: users, products and categories. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
