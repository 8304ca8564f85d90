// Package shared holds the pieces used by both the handlers and the middleware:
// context keys, trace ids, JSON request decoding and the error response body.
package shared
