package order

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// Assignment records which driver holds the order and what they reported.
// DeliveryTime stays nil until the driver's first delivery update.
type Assignment struct {
	driverID       kernel.UUID
	deliveryStatus DeliveryStatus
	deliveryTime   *time.Time
	notes          string
	assignedAt     time.Time
}

// RestoreAssignment rebuilds an assignment loaded from storage.
func RestoreAssignment(
	driverID kernel.UUID,
	deliveryStatus DeliveryStatus,
	deliveryTime *time.Time,
	notes string,
	assignedAt time.Time,
) (Assignment, error) {
	if err := driverID.Validate(); err != nil {
		return Assignment{}, err
	}
	if err := deliveryStatus.Validate(); err != nil {
		return Assignment{}, err
	}

	return Assignment{
		driverID:       driverID,
		deliveryStatus: deliveryStatus,
		deliveryTime:   deliveryTime,
		notes:          notes,
		assignedAt:     assignedAt,
	}, nil
}

func (a Assignment) DriverID() kernel.UUID {
	return a.driverID
}

func (a Assignment) DeliveryStatus() DeliveryStatus {
	return a.deliveryStatus
}

func (a Assignment) DeliveryTime() *time.Time {
	if a.deliveryTime == nil {
		return nil
	}
	t := *a.deliveryTime
	return &t
}

func (a Assignment) Notes() string {
	return a.notes
}

func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}
