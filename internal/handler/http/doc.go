// Package http implements the HTTP transport layer of the image gateway.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, metrics, CORS and per-client rate limiting are handled in this
// package before requests are delegated to the service layer. Failures are
// always answered with a JSON {"detail": "..."} body.
package http
