package http

import (
	"net/http"

	"warehouse/internal/auth"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Checkout handles POST /api/orders/checkout. The caller is the customer;
// names and prices come from the catalogue.
func (s *Server) Checkout(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var body checkoutRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}

	items := make([]commands.CheckoutItem, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return err
		}
		items = append(items, commands.CheckoutItem{ProductID: productID, Quantity: item.Quantity})
	}

	shipping, err := order.NewShippingInfo(
		body.Shipping.FullName,
		body.Shipping.Phone,
		body.Shipping.Email,
		body.Shipping.Address,
		body.Shipping.City,
		body.Shipping.PostalCode,
		body.Shipping.Country,
	)
	if err != nil {
		return err
	}

	customerName := body.CustomerName
	if customerName == "" {
		customerName = principal.Name
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, principal.UserID, customerName, items, shipping)
	if err != nil {
		return err
	}
	if err := s.handlers.Checkout.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusCreated, "order placed", orderID)
}

// GetOrders handles GET /api/orders.
func (s *Server) GetOrders(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrdersQuery(status, nil)
	if err != nil {
		return err
	}
	orders, err := s.handlers.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "orders loaded", toOrdersJSON(orders))
}

// GetMyOrders handles GET /api/orders/mine.
func (s *Server) GetMyOrders(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	status, err := statusFilter(c)
	if err != nil {
		return err
	}

	customerID := principal.UserID
	query, err := queries.NewGetOrdersQuery(status, &customerID)
	if err != nil {
		return err
	}
	orders, err := s.handlers.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "orders loaded", toOrdersJSON(orders))
}

// GetOrder handles GET /api/orders/:id. Callers without orders:read:all may
// only read their own orders.
func (s *Server) GetOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if !principal.Has(auth.PermOrdersReadAll) && !o.CustomerID.IsEqual(principal.UserID) {
		return errs.NewForbiddenError("read order " + orderID.String())
	}

	return respond(c, http.StatusOK, "order loaded", toOrderJSON(o))
}

// ChangeOrderStatus handles PATCH /api/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var body statusUpdateRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, body.Notes)
	if err != nil {
		return err
	}
	if err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, "order status updated", orderID)
}

func (s *Server) respondWithOrder(c echo.Context, status int, message string, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, status, message, toOrderJSON(o))
}

func statusFilter(c echo.Context) (*order.Status, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}

	status, err := order.ParseStatus(*raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
