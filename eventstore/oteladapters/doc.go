// Package oteladapters implements the eventstore observability interfaces with OpenTelemetry.
//
// The ledger wires them into the engines and its command and query handlers, see shell/config.
package oteladapters
