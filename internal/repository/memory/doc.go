// Package memory holds map-backed implementations of the domain
// repositories. They follow the same contracts as the PostgreSQL ones and
// back the service tests.
package memory
