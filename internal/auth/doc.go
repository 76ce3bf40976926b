// Package auth implements the client-side session layer.
//
// It contains three pieces:
//
//   - [TokenCodec] issues and validates three-segment bearer tokens carrying an expiry.
//   - [Session] holds the current user and token, persisted to a [store.Store].
//   - [Authenticator] is a local stand-in for an identity provider that issues tokens.
//
// Tokens are mock-only. The signature segment is a constant and is never verified, so a token
// proves nothing about who created it. Expiry is the only property checked. Do not reuse this
// scheme anywhere a real trust boundary exists.
package auth
