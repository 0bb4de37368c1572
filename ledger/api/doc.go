// Package api exposes the ledger features as a JSON HTTP surface routed by chi.
//
// Business failures answer 422 with the failure code and message, missing aggregates answer 404,
// malformed input answers 400. An append whose outcome is unknown answers 503, the client may retry
// with the same operation or squad id.
package api
