// Package featuretest provides the given and then helpers shared by the feature tests.
// Events are written to and read from a memoryengine.EventStore.
package featuretest
