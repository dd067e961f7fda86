// Package kernel contains shared value objects used across the domain model:
// UUID identifiers, Money amounts with currency rounding semantics, and the
// Actor identity that every cart and order operation is performed as.
//
// All value objects are immutable and must be created through their
// constructor functions; zero values fail Validate.
package kernel
