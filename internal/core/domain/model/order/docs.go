// Package order contains the Order aggregate and its supporting value
// objects: the status state machine, the frozen fee snapshot, customer info,
// and line items.
//
// The aggregate owns the lifecycle rules, who may transition an order and
// from which state, while the persistence layer mirrors the same
// preconditions as conditional writes. Together they let independent actors
// (restaurant staff, riders, the tracking customer) race over the same order
// safely without any explicit locking.
package order
