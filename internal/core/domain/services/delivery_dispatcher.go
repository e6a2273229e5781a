package services

import (
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/order"
)

// DeliveryDispatcher is a domain service that keeps an order and the driver
// delivering it in step.
//
// Key responsibilities:
//   - Handing a ready order to a driver and marking the driver busy
//   - Recording the driver's delivery outcome on the order
//   - Freeing the driver once they hold no order out for delivery
//
// Business rules:
//   - Only orders Ready for Pickup without an assigned driver can be claimed
//   - Only the assigned driver may report an outcome
//   - A driver with several claims stays Assigned until the last one ends
//
// The dispatcher never persists anything; callers load both aggregates in one
// unit of work and save them after a successful call.
//
// Example usage:
//
//	dispatcher := services.NewDeliveryDispatcher()
//	if err := dispatcher.Claim(o, d, now); err != nil {
//	    return err // InvalidState, Conflict
//	}
//	// persist o and d
type DeliveryDispatcher struct{}

// NewDeliveryDispatcher creates a new DeliveryDispatcher instance.
func NewDeliveryDispatcher() DeliveryDispatcher {
	return DeliveryDispatcher{}
}

// Claim assigns o to d.
//
// Returns:
//   - ConflictError if o is Out for Delivery with another driver
//   - InvalidStateError for any other status than Ready for Pickup
//   - validation errors if either aggregate was not built by its constructor
//
// On error neither aggregate is modified.
func (DeliveryDispatcher) Claim(o *order.Order, d *driver.Driver, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if err := o.Claim(d.ID(), now); err != nil {
		return err
	}
	d.Assign(now)

	return nil
}

// ReportDelivery records the outcome d reports for o and returns whether the
// outcome is terminal (Delivered or Not Delivered).
//
// Returns ForbiddenError when d is not assigned to o. The driver itself is
// not changed here: whether it can be freed depends on its other orders, see
// Release.
func (DeliveryDispatcher) ReportDelivery(
	o *order.Order,
	d *driver.Driver,
	status order.DeliveryStatus,
	notes string,
	now time.Time,
) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := d.Validate(); err != nil {
		return false, err
	}

	return o.UpdateDelivery(d.ID(), status, notes, now)
}

// Release frees d when activeAssignments, the number of orders it still has
// out for delivery, is zero. It returns true when d changed and must be saved.
func (DeliveryDispatcher) Release(d *driver.Driver, activeAssignments int64, now time.Time) bool {
	if activeAssignments > 0 || d.Status() != driver.Assigned {
		return false
	}
	d.Release(now)
	return true
}
