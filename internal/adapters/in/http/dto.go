package http

import (
	"time"

	"warehouse/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type lineItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type shippingRequest struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type checkoutRequest struct {
	CustomerName string            `json:"customerName"`
	Items        []lineItemRequest `json:"items"`
	Shipping     shippingRequest   `json:"shipping"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type deliveryUpdateRequest struct {
	DeliveryStatus string `json:"deliveryStatus"`
	Notes          string `json:"notes"`
}

type stockUpdateRequest struct {
	Items []lineItemRequest `json:"items"`
}

type newProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// orderJSON renders money as JSON numbers rounded to cents.
type orderJSON struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customerId"`
	CustomerName     string           `json:"customerName"`
	Status           string           `json:"status"`
	Items            []orderItemJSON  `json:"items"`
	TotalAmount      float64          `json:"totalAmount"`
	Subtotal         float64          `json:"subtotal"`
	Tax              float64          `json:"tax"`
	TaxRate          float64          `json:"taxRate"`
	Shipping         shippingRequest  `json:"shipping"`
	PreparationNotes string           `json:"preparationNotes,omitempty"`
	AssignedDrivers  []assignmentJSON `json:"assignedDrivers"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type orderItemJSON struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

type assignmentJSON struct {
	DriverID       string     `json:"driverId"`
	DeliveryStatus string     `json:"deliveryStatus"`
	DeliveryTime   *time.Time `json:"deliveryTime"`
	Notes          string     `json:"notes"`
	AssignedAt     time.Time  `json:"assignedAt"`
}

type driverJSON struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Status            string    `json:"status"`
	ActiveTimeSeconds int64     `json:"activeTimeSeconds"`
	ActiveOrders      int64     `json:"activeOrders"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

type productJSON struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type cartJSON struct {
	CustomerID string         `json:"customerId"`
	Items      []cartItemJSON `json:"items"`
	Subtotal   float64        `json:"subtotal"`
}

type cartItemJSON struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
	InStock   bool    `json:"inStock"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toOrderJSON(o queries.OrderResponse) orderJSON {
	items := make([]orderItemJSON, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemJSON{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     money(item.Price),
			LineTotal: money(item.LineTotal),
		}
	}

	assigned := []assignmentJSON{}
	if a := o.Assignment; a != nil {
		assigned = append(assigned, assignmentJSON{
			DriverID:       a.DriverID.String(),
			DeliveryStatus: a.DeliveryStatus,
			DeliveryTime:   a.DeliveryTime,
			Notes:          a.Notes,
			AssignedAt:     a.AssignedAt,
		})
	}

	return orderJSON{
		ID:           o.ID.String(),
		CustomerID:   o.CustomerID.String(),
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Items:        items,
		TotalAmount:  money(o.TotalAmount),
		Subtotal:     money(o.Subtotal),
		Tax:          money(o.Tax),
		TaxRate:      o.TaxRate.InexactFloat64(),
		Shipping: shippingRequest{
			FullName:   o.Shipping.FullName,
			Phone:      o.Shipping.Phone,
			Email:      o.Shipping.Email,
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		},
		PreparationNotes: o.PreparationNotes,
		AssignedDrivers:  assigned,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toOrdersJSON(orders []queries.OrderResponse) []orderJSON {
	out := make([]orderJSON, len(orders))
	for i, o := range orders {
		out[i] = toOrderJSON(o)
	}
	return out
}

func toDriversJSON(drivers []queries.GetDriversQueryResponse) []driverJSON {
	out := make([]driverJSON, len(drivers))
	for i, d := range drivers {
		out[i] = driverJSON{
			ID:                d.ID.String(),
			UserID:            d.UserID.String(),
			Status:            d.Status,
			ActiveTimeSeconds: int64(d.ActiveTime.Seconds()),
			ActiveOrders:      d.ActiveOrders,
			LastUpdated:       d.LastUpdated,
		}
	}
	return out
}

func toProductJSON(p queries.ProductResponse) productJSON {
	return productJSON{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         money(p.Price),
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toCartJSON(c queries.CartResponse) cartJSON {
	items := make([]cartItemJSON, len(c.Items))
	for i, item := range c.Items {
		items[i] = cartItemJSON{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     money(item.Price),
			Quantity:  item.Quantity,
			LineTotal: money(item.LineTotal),
			InStock:   item.InStock,
		}
	}
	return cartJSON{
		CustomerID: c.CustomerID.String(),
		Items:      items,
		Subtotal:   money(c.Subtotal),
	}
}
