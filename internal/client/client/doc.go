// Package client contains client-side building blocks for the ReadDaily CLI.
//
// # Overview
//
// The package provides:
//  1. The Client interface, the remote API contract used by the CLI.
//  2. GRPCClient, its gRPC implementation over the JSON codec. It injects the
//     access token via an interceptor, transparently refreshes expired tokens
//     and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database of the local mode and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Transport conditions are exposed as ErrUnavailable and ErrUnauthorized.
// Domain failures reported by the server map back to the sentinels of
// internal/common (ErrorValidation, ErrorNotFound, ErrorAlreadyExists,
// ErrorForbidden) so callers can match them with errors.Is in both modes.
package client
