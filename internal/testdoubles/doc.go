// Package testdoubles provides spies for the logging, metrics and tracing interfaces,
// used by tests of the event store engines, the shell and the observable wrappers.
package testdoubles
