package http

import (
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetProducts handles GET /api/products.
func (s *Server) GetProducts(c echo.Context) error {
	products, err := s.handlers.GetProducts.Handle(c.Request().Context(), queries.NewGetProductsQuery())
	if err != nil {
		return err
	}

	out := make([]productJSON, len(products))
	for i, p := range products {
		out[i] = toProductJSON(p)
	}
	return respond(c, http.StatusOK, "products loaded", out)
}

// GetProduct handles GET /api/products/:id.
func (s *Server) GetProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	return s.respondWithProduct(c, http.StatusOK, "product loaded", productID)
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(c echo.Context) error {
	var body newProductRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(productID, body.Name, body.Description, body.Price, body.StockQuantity)
	if err != nil {
		return err
	}
	if err := s.handlers.CreateProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithProduct(c, http.StatusCreated, "product created", productID)
}

// UpdateStock handles PUT /api/products/update-stock. The batch is applied
// in one transaction: either every decrement succeeds or none does.
func (s *Server) UpdateStock(c echo.Context) error {
	var body stockUpdateRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}

	items := make([]commands.StockItem, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return err
		}
		items = append(items, commands.StockItem{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewUpdateStockCommand(items)
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateStock.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "stock updated", nil)
}

func (s *Server) respondWithProduct(c echo.Context, status int, message string, productID kernel.UUID) error {
	query, err := queries.NewGetProductQuery(productID)
	if err != nil {
		return err
	}
	p, err := s.handlers.GetProduct.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, status, message, toProductJSON(p))
}

// GetCart handles GET /api/cart.
func (s *Server) GetCart(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	return s.respondWithCart(c, "cart loaded", principal.UserID)
}

// SetCartItem handles PUT /api/cart/items.
func (s *Server) SetCartItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var body cartItemRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetCartItemCommand(principal.UserID, productID, body.Quantity)
	if err != nil {
		return err
	}
	if err := s.handlers.SetCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithCart(c, "cart updated", principal.UserID)
}

// ClearCart handles DELETE /api/cart.
func (s *Server) ClearCart(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClearCartCommand(principal.UserID)
	if err != nil {
		return err
	}
	if err := s.handlers.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "cart cleared", nil)
}

func (s *Server) respondWithCart(c echo.Context, message string, customerID kernel.UUID) error {
	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return err
	}
	cart, err := s.handlers.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, message, toCartJSON(cart))
}
