// Package common contains shared constants and sentinel errors used across
// TaskKeeper components.
package common

// AuthorizationHeaderName is the gRPC metadata key carrying the access token
// on authenticated requests. gRPC lower-cases metadata keys.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is accepted, but not required, in front of the token.
const BearerPrefix = "Bearer "
