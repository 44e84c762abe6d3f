// Package kernel holds the value objects shared by every aggregate of the order
// lifecycle engine: identifiers, id generators, acting roles and actors, and
// the id/name references an order keeps to its supplier and customer.
//
// Nothing in this package reads ambient session state. The acting user is
// always passed explicitly as an Actor.
package kernel
