// Package auth holds the credential primitives of the API: bcrypt password
// hashing and HS256 bearer tokens with expiry and revocation.
package auth
