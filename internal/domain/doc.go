// Package domain defines the core domain types and interfaces.
//
// The sole entity is the Timer; the unit of synchronization is the whole
// TimerSet, carried on the wire and in the cache as a SetSnapshot. Adapter
// contracts (store, broadcast channel, fallback cache) live here on the
// consumer side to prevent circular imports. No implementation code.
package domain
