package driver

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver tracks the availability of a user acting as a delivery driver.
// It is created lazily the first time a user claims an order or reports a
// delivery, and is linked 1:1 to that user.
//
// Business rules:
//   - a driver is Assigned while holding at least one order out for delivery
//   - busy time is accumulated into ActiveTime whenever the driver is released
//   - lastUpdated marks the last availability change
type Driver struct {
	id          kernel.UUID
	userID      kernel.UUID
	status      Status
	activeTime  time.Duration
	lastUpdated time.Time
	guard       guard.ConstructorGuard
}

// NewDriver creates an Idle driver for userID.
//
// Example:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), principal.UserID, time.Now())
func NewDriver(id kernel.UUID, userID kernel.UUID, now time.Time) (*Driver, error) {
	d := &Driver{
		status:      Idle,
		lastUpdated: now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver rebuilds a driver loaded from storage.
func RestoreDriver(
	id kernel.UUID,
	userID kernel.UUID,
	status Status,
	activeTime time.Duration,
	lastUpdated time.Time,
) (*Driver, error) {
	d := &Driver{
		activeTime:  activeTime,
		lastUpdated: lastUpdated,
		guard:       guard.NewConstructorGuard(),
	}

	var statusErr error
	if statusErr = status.Validate(); statusErr == nil {
		d.status = status
	}
	var activeErr error
	if activeTime < 0 {
		activeErr = errs.NewValueIsInvalidErrorWithCause("active time", fmt.Errorf("%s is negative", activeTime))
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		statusErr,
		activeErr,
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) UserID() kernel.UUID {
	return d.userID
}

func (d *Driver) Status() Status {
	return d.status
}

// ActiveTime is the accumulated time spent Assigned, excluding the current
// busy period.
func (d *Driver) ActiveTime() time.Duration {
	return d.activeTime
}

func (d *Driver) LastUpdated() time.Time {
	return d.lastUpdated
}

// Assign marks the driver busy. Assigning an already Assigned driver keeps
// the original busy start so active time is not lost.
func (d *Driver) Assign(now time.Time) {
	if d.status == Assigned {
		return
	}
	d.status = Assigned
	d.lastUpdated = now
}

// Release frees the driver and adds the elapsed busy period to ActiveTime.
// Releasing an Idle driver is a no-op.
func (d *Driver) Release(now time.Time) {
	if d.status != Assigned {
		return
	}
	if elapsed := now.Sub(d.lastUpdated); elapsed > 0 {
		d.activeTime += elapsed
	}
	d.status = Idle
	d.lastUpdated = now
}

// SyncWithAssignments repairs a status that drifted from the orders the
// driver actually holds. It returns true when the status changed.
func (d *Driver) SyncWithAssignments(hasActiveAssignments bool, now time.Time) bool {
	switch {
	case hasActiveAssignments && d.status != Assigned:
		d.Assign(now)
		return true
	case !hasActiveAssignments && d.status == Assigned:
		d.Release(now)
		return true
	default:
		return false
	}
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver user", err)
	}
	d.userID = userID
	return nil
}
