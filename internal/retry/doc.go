// Package retry provides retry execution with exponential backoff for
// connection establishment.
//
// Only transient failures are retried: PostgreSQL connection and resource
// error classes, network-level errors, and well-known connection error
// message patterns. Everything else fails on the first attempt.
package retry
