package http

import (
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetDrivers handles GET /api/drivers.
func (s *Server) GetDrivers(c echo.Context) error {
	drivers, err := s.handlers.GetDrivers.Handle(c.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "drivers loaded", toDriversJSON(drivers))
}

// GetAvailableOrders handles GET /api/drivers/available-orders.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	orders, err := s.handlers.GetAvailableOrders.Handle(c.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "available orders loaded", toOrdersJSON(orders))
}

// ClaimOrder handles POST /api/drivers/claim-order/:orderId.
func (s *Server) ClaimOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, principal.UserID)
	if err != nil {
		return err
	}
	if err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, "order claimed", orderID)
}

// UpdateDelivery handles PUT /api/drivers/update-delivery/:orderId.
func (s *Server) UpdateDelivery(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var body deliveryUpdateRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	deliveryStatus, err := order.ParseDeliveryStatus(body.DeliveryStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryCommand(orderID, principal.UserID, deliveryStatus, body.Notes)
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, "delivery updated", orderID)
}

// GetMyDeliveries handles GET /api/drivers/my-orders.
func (s *Server) GetMyDeliveries(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDriverOrdersQuery(principal.UserID)
	if err != nil {
		return err
	}
	orders, err := s.handlers.GetDriverOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "assigned orders loaded", toOrdersJSON(orders))
}
