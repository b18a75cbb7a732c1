// Package api defines the wire contract of the ReadDaily gRPC service: the
// request and response messages, the JSON codec they travel with, and the
// service descriptor shared by the server and the client.
package api
