// Package tokencache stores revoked token ids until the tokens would have
// expired anyway. Redis is used when configured so revocations are shared by
// every API instance; otherwise an in-process cache is used.
package tokencache
