// Package services contains stateless domain services that operate across
// aggregates. The pricing service turns a cart into a price breakdown; it is
// pure and performs no I/O, so checkout and cart summaries always price the
// same cart the same way.
package services
