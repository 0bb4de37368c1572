// Package config holds the daemon configuration and the factories built from it:
// PostgreSQL connections for the three supported drivers and the OpenTelemetry providers.
//
// Configuration is read from an optional YAML file, environment variables win over the file:
//
//	LEDGER_HTTP_ADDR, LEDGER_POSTGRES_DSN, LEDGER_POSTGRES_REPLICA_DSN, LEDGER_DRIVER,
//	LEDGER_LOG_LEVEL, LEDGER_OBSERVABILITY_ENABLED
//
// Without a DSN the daemon runs on the in-memory engine.
package config
