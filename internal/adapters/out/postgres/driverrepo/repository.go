package driverrepo

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const activeAssignment = "SELECT 1 FROM order_assignments a WHERE a.driver_id = drivers.id AND a.delivery_status = ?"

// GormDriverRepository implements DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreateByUserID inserts an Idle driver unless one already exists for
// the user, then reads it back under a row lock.
func (r *GormDriverRepository) GetOrCreateByUserID(
	ctx context.Context,
	userID kernel.UUID,
	now time.Time,
) (*driver.Driver, error) {
	candidate, err := driver.NewDriver(kernel.NewUUID(), userID, now)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(candidate)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&dto).Error; err != nil {
		return nil, err
	}

	var found DriverDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&found, "user_id = ?", userID.Bytes()).Error; err != nil {
		return nil, err
	}
	return toDomain(found)
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Update saves the driver's availability.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"active_time":  dto.ActiveTime,
			"last_updated": dto.LastUpdated,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// CountActiveAssignments counts the driver's assignments still Out for Delivery.
func (r *GormDriverRepository) CountActiveAssignments(ctx context.Context, driverID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("order_assignments").
		Where("driver_id = ? AND delivery_status = ?", driverID.Bytes(), order.DeliveryOutForDelivery.String()).
		Count(&count).Error
	return count, err
}

// ListMismatched returns drivers whose status disagrees with their
// assignments, locked for update so a concurrent claim cannot interleave.
func (r *GormDriverRepository) ListMismatched(ctx context.Context) ([]*driver.Driver, error) {
	active := order.DeliveryOutForDelivery.String()

	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"(status = ? AND NOT EXISTS ("+activeAssignment+")) OR (status = ? AND EXISTS ("+activeAssignment+"))",
			driver.Assigned.String(), active,
			driver.Idle.String(), active,
		).
		Order("last_updated").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}
