// Package order contains the Order aggregate: the durable, shared record
// three independent actors (customer, business, courier) act on
// asynchronously. The aggregate owns the status state machine, the immutable
// price snapshot frozen at checkout, and the append-only status history.
//
// All status changes go through Order.TransitionTo, which consults the one
// authoritative transition table; persistence adapters pair it with a
// conditional update on the previous status so that racing actors resolve
// deterministically.
package order
