// Package http exposes the dispatch engine over a JSON API built on echo.
// Every request is validated against the embedded OpenAPI document before it
// reaches a handler.
package http

import (
	"context"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
)

// Handlers are the use cases served by the API.
type Handlers struct {
	AddStore                  commands.AddStoreCommandHandler
	AddCourier                commands.AddCourierCommandHandler
	AddCustomer               commands.AddCustomerCommandHandler
	CreateOrder               commands.CreateOrderCommandHandler
	AssignCourier             commands.AssignCourierCommandHandler
	BeginTransit              commands.BeginTransitCommandHandler
	MarkDelivered             commands.MarkDeliveredCommandHandler
	ChangeCourierAvailability commands.ChangeCourierAvailabilityCommandHandler

	GetStores        queries.GetStoresQueryHandler
	GetCouriers      queries.GetCouriersQueryHandler
	GetCustomers     queries.GetCustomersQueryHandler
	GetOrders        queries.GetOrdersQueryHandler
	GetDashboard     queries.GetDashboardQueryHandler
	RecommendCourier queries.RecommendCourierQueryHandler
}

// Server routes HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
	echo     *echo.Echo
	logger   *slog.Logger
}

// NewServer creates the echo instance with logging, recovery and request
// validation middleware and registers every route.
func NewServer(ctx context.Context, handlers Handlers, logger *slog.Logger) (*Server, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	router, err := newRouter(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		handlers: handlers,
		echo:     echo.New(),
		logger:   logger.With("component", "http_server"),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.JSONSerializer = jsonSerializer{}
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLogger())
	s.echo.Use(requestValidator(router))
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.Health)

	api := s.echo.Group("/api/v1")
	api.GET("/dashboard", s.GetDashboard)

	api.GET("/stores", s.GetStores)
	api.POST("/stores", s.CreateStore)

	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:courierId/availability", s.ChangeCourierAvailability)

	api.GET("/customers", s.GetCustomers)
	api.POST("/customers", s.CreateCustomer)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/recommendation", s.RecommendCourier)
	api.POST("/orders/:orderId/assignment", s.AssignCourier)
	api.POST("/orders/:orderId/transit", s.BeginTransit)
	api.POST("/orders/:orderId/delivery", s.MarkDelivered)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on address until Shutdown. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start(address string) error {
	s.logger.Info("http server listening", "address", address)
	return s.echo.Start(address)
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelDebug, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency))
			return nil
		},
	})
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonSerializer replaces echo's encoding/json serializer with json-iterator.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := jsonAPI.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i any) error {
	if err := jsonAPI.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return nil
}
