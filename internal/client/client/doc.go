// Package client talks to the TaskKeeper server over gRPC on behalf of the
// CLI.
//
// GRPCClient attaches the stored access token to every guarded call. When the
// server answers Unauthenticated and a refresh token is on hand, the client
// mints a new access token, saves it and retries the call once. Transport
// failures surface as ErrUnavailable, rejected credentials as
// ErrUnauthorized.
package client
