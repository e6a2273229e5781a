package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse is the read model shared by every order query. Billing is
// presented back-filled; the stored row is only rewritten by a claim or a
// delivery update.
type OrderResponse struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	CustomerName     string
	Status           string
	TotalAmount      decimal.Decimal
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	TaxRate          decimal.Decimal
	Shipping         ShippingResponse
	PreparationNotes string
	Items            []OrderItemResponse
	Assignment       *AssignmentResponse
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ShippingResponse struct {
	FullName   string
	Phone      string
	Email      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	Price     decimal.Decimal
	LineTotal decimal.Decimal
}

type AssignmentResponse struct {
	DriverID       kernel.UUID
	DeliveryStatus string
	DeliveryTime   *time.Time
	Notes          string
	AssignedAt     time.Time
}

type orderRow struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	CustomerName       string
	Status             string
	TotalAmount        decimal.Decimal
	Subtotal           decimal.NullDecimal
	Tax                decimal.NullDecimal
	TaxRate            decimal.NullDecimal
	ShippingFullName   string
	ShippingPhone      string
	ShippingEmail      string
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	ShippingCountry    string
	PreparationNotes   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DriverID           uuid.NullUUID
	DeliveryStatus     *string
	DeliveryTime       *time.Time
	AssignmentNotes    *string
	AssignedAt         *time.Time
}

type orderItemRow struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

const selectOrders = `
	SELECT
		o.id,
		o.customer_id,
		o.customer_name,
		o.status,
		o.total_amount,
		o.subtotal,
		o.tax,
		o.tax_rate,
		o.shipping_full_name,
		o.shipping_phone,
		o.shipping_email,
		o.shipping_address,
		o.shipping_city,
		o.shipping_postal_code,
		o.shipping_country,
		o.preparation_notes,
		o.created_at,
		o.updated_at,
		a.driver_id,
		a.delivery_status,
		a.delivery_time,
		a.notes AS assignment_notes,
		a.assigned_at
	FROM orders o
	LEFT JOIN order_assignments a ON a.order_id = o.id
`

// findOrders runs selectOrders with the given filter and ordering and
// attaches the items of every returned order.
func findOrders(ctx context.Context, db *gorm.DB, where string, orderBy string, args ...any) ([]OrderResponse, error) {
	sql := selectOrders
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " ORDER BY " + orderBy

	var rows []orderRow
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := findOrderItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		resp, err := row.toResponse(items[row.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}
	return orders, nil
}

func findOrderItems(ctx context.Context, db *gorm.DB, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItemResponse, error) {
	var rows []orderItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT order_id, product_id, name, quantity, price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, orderIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make(map[uuid.UUID][]OrderItemResponse, len(orderIDs))
	for _, row := range rows {
		productID, err := kernel.UUIDFromGoogle(row.ProductID)
		if err != nil {
			return nil, err
		}
		items[row.OrderID] = append(items[row.OrderID], OrderItemResponse{
			ProductID: productID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Price:     row.Price,
			LineTotal: kernel.RoundMoney(row.Price.Mul(decimal.NewFromInt(int64(row.Quantity)))),
		})
	}
	return items, nil
}

func (r orderRow) toResponse(items []OrderItemResponse) (OrderResponse, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return OrderResponse{}, err
	}
	customerID, err := kernel.UUIDFromGoogle(r.CustomerID)
	if err != nil {
		return OrderResponse{}, err
	}

	billing := order.RestoreBilling(r.TotalAmount, r.Subtotal, r.Tax, r.TaxRate).Backfill()
	if items == nil {
		items = []OrderItemResponse{}
	}

	resp := OrderResponse{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: r.CustomerName,
		Status:       r.Status,
		TotalAmount:  billing.TotalAmount(),
		Subtotal:     billing.Subtotal().Decimal,
		Tax:          billing.Tax().Decimal,
		TaxRate:      billing.TaxRate().Decimal,
		Shipping: ShippingResponse{
			FullName:   r.ShippingFullName,
			Phone:      r.ShippingPhone,
			Email:      r.ShippingEmail,
			Address:    r.ShippingAddress,
			City:       r.ShippingCity,
			PostalCode: r.ShippingPostalCode,
			Country:    r.ShippingCountry,
		},
		PreparationNotes: r.PreparationNotes,
		Items:            items,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if r.DriverID.Valid {
		driverID, err := kernel.UUIDFromGoogle(r.DriverID.UUID)
		if err != nil {
			return OrderResponse{}, err
		}
		assignment := &AssignmentResponse{DriverID: driverID}
		if r.DeliveryStatus != nil {
			assignment.DeliveryStatus = *r.DeliveryStatus
		}
		if r.AssignmentNotes != nil {
			assignment.Notes = *r.AssignmentNotes
		}
		if r.AssignedAt != nil {
			assignment.AssignedAt = *r.AssignedAt
		}
		assignment.DeliveryTime = r.DeliveryTime
		resp.Assignment = assignment
	}

	return resp, nil
}
