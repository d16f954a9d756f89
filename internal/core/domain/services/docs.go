// Package services contains stateless domain services that operate on
// already-loaded aggregates. Services here are pure: they never mutate
// state and never touch storage or transport.
package services
