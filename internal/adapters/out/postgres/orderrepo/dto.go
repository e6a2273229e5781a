// Package orderrepo persists order aggregates in three tables: the order row,
// its immutable item snapshots and the driver assignment.
package orderrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the order row. Version is the compare-and-swap token used by
// Update. Subtotal, tax and tax rate are nullable for legacy rows.
type OrderDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID           `gorm:"type:uuid;index;not null"`
	CustomerName     string              `gorm:"type:varchar(255)"`
	Status           string              `gorm:"type:varchar(32);index;not null"`
	TotalAmount      decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Subtotal         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Tax              decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	TaxRate          decimal.NullDecimal `gorm:"type:numeric(5,4)"`
	Shipping         ShippingDTO         `gorm:"embedded;embeddedPrefix:shipping_"`
	PreparationNotes string              `gorm:"type:text"`
	Version          int64               `gorm:"not null;default:0"`
	CreatedAt        time.Time           `gorm:"index"`
	UpdatedAt        time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ShippingDTO struct {
	FullName   string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(64)"`
	Email      string `gorm:"type:varchar(255)"`
	Address    string `gorm:"type:text"`
	City       string `gorm:"type:varchar(128)"`
	PostalCode string `gorm:"type:varchar(32)"`
	Country    string `gorm:"type:varchar(64)"`
}

// OrderItemDTO is one snapshotted order line, kept in checkout order by Position.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// AssignmentDTO keys on order_id, so the database itself refuses a second
// driver for the same order.
type AssignmentDTO struct {
	OrderID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	DeliveryStatus string     `gorm:"type:varchar(32);index;not null"`
	DeliveryTime   *time.Time
	Notes          string     `gorm:"type:text"`
	AssignedAt     time.Time
}

func (AssignmentDTO) TableName() string {
	return "order_assignments"
}

func fromDomain(aggregate *order.Order) (OrderDTO, []OrderItemDTO, *AssignmentDTO) {
	billing := aggregate.Billing()
	shipping := aggregate.Shipping()

	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		CustomerName: aggregate.CustomerName(),
		Status:       aggregate.Status().String(),
		TotalAmount:  billing.TotalAmount(),
		Subtotal:     billing.Subtotal(),
		Tax:          billing.Tax(),
		TaxRate:      billing.TaxRate(),
		Shipping: ShippingDTO{
			FullName:   shipping.FullName(),
			Phone:      shipping.Phone(),
			Email:      shipping.Email(),
			Address:    shipping.Address(),
			City:       shipping.City(),
			PostalCode: shipping.PostalCode(),
			Country:    shipping.Country(),
		},
		PreparationNotes: aggregate.PreparationNotes(),
		Version:          aggregate.Version(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	var assignment *AssignmentDTO
	if assignments := aggregate.Assignments(); len(assignments) > 0 {
		a := assignments[0]
		assignment = &AssignmentDTO{
			OrderID:        dto.ID,
			DriverID:       a.DriverID().Bytes(),
			DeliveryStatus: a.DeliveryStatus().String(),
			DeliveryTime:   a.DeliveryTime(),
			Notes:          a.Notes(),
			AssignedAt:     a.AssignedAt(),
		}
	}

	return dto, items, assignment
}

func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO, assignmentDTO *AssignmentDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		productID, err := kernel.UUIDFromGoogle(itemDTO.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productID, itemDTO.Name, itemDTO.Quantity, itemDTO.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var assignments []order.Assignment
	if assignmentDTO != nil {
		driverID, err := kernel.UUIDFromGoogle(assignmentDTO.DriverID)
		if err != nil {
			return nil, err
		}
		deliveryStatus, err := order.ParseDeliveryStatus(assignmentDTO.DeliveryStatus)
		if err != nil {
			return nil, err
		}
		a, err := order.RestoreAssignment(
			driverID,
			deliveryStatus,
			assignmentDTO.DeliveryTime,
			assignmentDTO.Notes,
			assignmentDTO.AssignedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	shipping := order.RestoreShippingInfo(
		dto.Shipping.FullName,
		dto.Shipping.Phone,
		dto.Shipping.Email,
		dto.Shipping.Address,
		dto.Shipping.City,
		dto.Shipping.PostalCode,
		dto.Shipping.Country,
	)

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		CustomerID:       customerID,
		CustomerName:     dto.CustomerName,
		Items:            items,
		Billing:          order.RestoreBilling(dto.TotalAmount, dto.Subtotal, dto.Tax, dto.TaxRate),
		Shipping:         shipping,
		Status:           status,
		Assignments:      assignments,
		PreparationNotes: dto.PreparationNotes,
		Version:          dto.Version,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}
