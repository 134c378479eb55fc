// Package memory provides an in-memory implementation of the store
// interfaces. It is the reference implementation used in tests and as the
// default backend when no database is configured; the postgres package
// provides the durable equivalent.
package memory
