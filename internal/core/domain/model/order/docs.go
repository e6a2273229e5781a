// Package order implements the Order aggregate of the warehouse service and
// the state machine that drives it from checkout to delivery.
//
// The package includes:
//   - Order: the aggregate root holding items, billing, shipping and the driver assignment
//   - Status and Action: the order state machine, with one transition table
//   - DeliveryStatus: the outcome a driver reports and its mapping onto Status
//   - Billing: money fields with the 13% legacy tax back-fill
//   - Event: lifecycle events raised by the aggregate
//
// Key business rules:
//   - An order is claimed by at most one driver, and only while Ready for Pickup
//   - Only the assigned driver may report the delivery outcome
//   - Delivered and Failed Delivery are terminal; failed orders are not reassigned
//   - Item name and price are snapshots and never follow catalogue edits
package order
