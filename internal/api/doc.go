// Package api defines the TaskKeeper gRPC contract shared by the server and
// the client: message types, the service descriptor and a typed client.
//
// Messages are plain Go structs carried with a JSON codec registered under
// the "json" content-subtype, so no generated protobuf code is involved.
// Clients must call with grpc.CallContentSubtype(CodecName); the Client in
// this package does so on every call.
package api
