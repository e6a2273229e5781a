package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

var errOrderChanged = errors.New("order was modified by a concurrent request")

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, assignment := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("order", aggregate.ID().String(), err)
		}
		return err
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	if assignment != nil {
		if err := db.Create(assignment).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row with a compare-and-swap on version and then
// upserts the assignment. Items are immutable and never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _, assignment := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":            dto.Status,
			"total_amount":      dto.TotalAmount,
			"subtotal":          dto.Subtotal,
			"tax":               dto.Tax,
			"tax_rate":          dto.TaxRate,
			"preparation_notes": dto.PreparationNotes,
			"version":           dto.Version + 1,
			"updated_at":        dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrChanged(ctx, aggregate.ID())
	}

	if assignment != nil {
		if err := r.saveAssignment(ctx, aggregate.ID(), assignment); err != nil {
			return err
		}
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with items and assignment.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var items []OrderItemDTO
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}

	var assignments []AssignmentDTO
	if err := db.Where("order_id = ?", dto.ID).Limit(1).Find(&assignments).Error; err != nil {
		return nil, err
	}
	var assignment *AssignmentDTO
	if len(assignments) > 0 {
		assignment = &assignments[0]
	}

	o, err := toDomain(dto, items, assignment)
	if err != nil {
		return nil, fmt.Errorf("restore order %s: %w", id, err)
	}
	return o, nil
}

// saveAssignment updates the driver's assignment row or creates it on the
// first claim. A second driver hits the order_id primary key and gets a
// ConflictError.
func (r *GormOrderRepository) saveAssignment(ctx context.Context, orderID kernel.UUID, dto *AssignmentDTO) error {
	db := r.db.WithContext(ctx)

	result := db.Model(&AssignmentDTO{}).
		Where("order_id = ? AND driver_id = ?", dto.OrderID, dto.DriverID).
		Updates(map[string]any{
			"delivery_status": dto.DeliveryStatus,
			"delivery_time":   dto.DeliveryTime,
			"notes":           dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if err := db.Create(dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("order", orderID.String(), errors.New("order is already claimed"))
		}
		return err
	}
	return nil
}

func (r *GormOrderRepository) missingOrChanged(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConflictErrorWithCause("order", id.String(), errOrderChanged)
}
