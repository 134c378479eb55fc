// Package service contains the application use cases. It orchestrates the
// domain entities and the store interfaces to fulfill features: recording
// practice attempts, aggregating learner statistics, selecting suggestion
// feeds, and rotating the daily word. Services depend on store interfaces,
// never on a concrete backend, so the memory and postgres implementations
// are interchangeable underneath them.
package service
