// Package driverrepo persists driver aggregates.
package driverrepo

import (
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the drivers row. UserID is unique: one driver per user.
// ActiveTime is stored in nanoseconds.
type DriverDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status      string    `gorm:"type:varchar(16);index;not null"`
	ActiveTime  int64     `gorm:"not null;default:0"`
	LastUpdated time.Time `gorm:"not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:          d.ID().Bytes(),
		UserID:      d.UserID().Bytes(),
		Status:      d.Status().String(),
		ActiveTime:  int64(d.ActiveTime()),
		LastUpdated: d.LastUpdated(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromGoogle(dto.UserID)
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(id, userID, status, time.Duration(dto.ActiveTime), dto.LastUpdated)
}
