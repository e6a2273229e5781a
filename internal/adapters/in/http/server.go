// Package http exposes the warehouse use cases over a JSON API served by echo.
//
// Every route under /api requires a JWT, taken from the Authorization
// bearer header or the token cookie, and the permission listed in Routes.
// Request bodies and parameters are checked against the embedded OpenAPI
// document before a handler runs. Responses are wrapped in Envelope.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"warehouse/internal/auth"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// CommandHandler is satisfied by every command handler in the commands package.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by every query handler in the queries package.
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases the API dispatches to.
type Handlers struct {
	Checkout          CommandHandler[commands.CheckoutCommand]
	ChangeOrderStatus CommandHandler[commands.ChangeOrderStatusCommand]
	ClaimOrder        CommandHandler[commands.ClaimOrderCommand]
	UpdateDelivery    CommandHandler[commands.UpdateDeliveryCommand]
	UpdateStock       CommandHandler[commands.UpdateStockCommand]
	CreateProduct     CommandHandler[commands.CreateProductCommand]
	SetCartItem       CommandHandler[commands.SetCartItemCommand]
	ClearCart         CommandHandler[commands.ClearCartCommand]

	GetOrders          QueryHandler[queries.GetOrdersQuery, []queries.OrderResponse]
	GetOrder           QueryHandler[queries.GetOrderQuery, queries.OrderResponse]
	GetAvailableOrders QueryHandler[queries.GetAvailableOrdersQuery, []queries.OrderResponse]
	GetDriverOrders    QueryHandler[queries.GetDriverOrdersQuery, []queries.OrderResponse]
	GetDrivers         QueryHandler[queries.GetDriversQuery, []queries.GetDriversQueryResponse]
	GetProducts        QueryHandler[queries.GetProductsQuery, []queries.ProductResponse]
	GetProduct         QueryHandler[queries.GetProductQuery, queries.ProductResponse]
	GetCart            QueryHandler[queries.GetCartQuery, queries.CartResponse]
}

// Server implements the HTTP endpoints on top of the application use cases.
type Server struct {
	handlers  Handlers
	tokens    *auth.TokenParser
	events    http.Handler
	validator *requestValidator
	logger    *slog.Logger
}

// NewServer wires the handlers, the token parser and the live event feed.
// events may be nil, in which case /api/events is not registered.
func NewServer(
	handlers Handlers,
	tokens *auth.TokenParser,
	doc *openapi3.T,
	events http.Handler,
	logger *slog.Logger,
) (*Server, error) {
	validator, err := newRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	return &Server{
		handlers:  handlers,
		tokens:    tokens,
		events:    events,
		validator: validator,
		logger:    logger.With("component", "http"),
	}, nil
}

// Echo builds the echo instance with middleware and every route attached.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", authenticate(s.tokens))

	api.POST("/orders/checkout", s.Checkout, s.guard(auth.PermOrdersCheckout)...)
	api.GET("/orders", s.GetOrders, s.guard(auth.PermOrdersReadAll)...)
	api.GET("/orders/mine", s.GetMyOrders, s.guard(auth.PermOrdersReadOwn)...)
	api.GET("/orders/:id", s.GetOrder, s.guard(auth.PermOrdersReadAll, auth.PermOrdersReadOwn)...)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus, s.guard(auth.PermOrdersUpdateStatus)...)

	api.GET("/drivers", s.GetDrivers, s.guard(auth.PermDriversRead)...)
	api.GET("/drivers/available-orders", s.GetAvailableOrders, s.guard(auth.PermOrdersClaim)...)
	api.POST("/drivers/claim-order/:orderId", s.ClaimOrder, s.guard(auth.PermOrdersClaim)...)
	api.PUT("/drivers/update-delivery/:orderId", s.UpdateDelivery, s.guard(auth.PermOrdersClaim)...)
	api.GET("/drivers/my-orders", s.GetMyDeliveries, s.guard(auth.PermOrdersClaim)...)

	api.GET("/products", s.GetProducts, s.guard(auth.PermProductsRead)...)
	api.POST("/products", s.CreateProduct, s.guard(auth.PermProductsWrite)...)
	api.PUT("/products/update-stock", s.UpdateStock, s.guard(auth.PermStockUpdate)...)
	api.GET("/products/:id", s.GetProduct, s.guard(auth.PermProductsRead)...)

	api.GET("/cart", s.GetCart, s.guard(auth.PermCartManage)...)
	api.PUT("/cart/items", s.SetCartItem, s.guard(auth.PermCartManage)...)
	api.DELETE("/cart", s.ClearCart, s.guard(auth.PermCartManage)...)

	if s.events != nil {
		api.GET("/events", echo.WrapHandler(s.events))
	}

	return e
}

// guard checks permissions first and the request shape second.
func (s *Server) guard(permissions ...auth.Permission) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{requirePermission(permissions...), s.validator.Middleware}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return respond(c, http.StatusOK, "healthy", nil)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromString(raw)
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
