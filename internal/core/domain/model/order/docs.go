// Package order contains the Order aggregate: the priced, persisted
// result of a checkout, its immutable item snapshots, and the status
// state machine that governs every mutation of an order after creation.
//
// Orders are append-only history: they are created once, advanced
// through the status graph, and never deleted.
package order
