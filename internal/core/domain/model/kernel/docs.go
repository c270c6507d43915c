// Package kernel contains the shared value objects of the ordering
// domain: entity identifiers and money arithmetic. All domain model
// packages build on these primitives.
package kernel
