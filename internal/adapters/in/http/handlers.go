package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
)

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetDashboard handles GET /api/v1/dashboard - live counters for the map overlay.
func (s *Server) GetDashboard(c echo.Context) error {
	dashboard, err := s.handlers.GetDashboard.Handle(c.Request().Context(), queries.NewGetDashboardQuery())
	if err != nil {
		return s.fail(c, err, "retrieve dashboard")
	}

	return c.JSON(http.StatusOK, toDashboard(dashboard))
}

// GetStores handles GET /api/v1/stores.
func (s *Server) GetStores(c echo.Context) error {
	stores, err := s.handlers.GetStores.Handle(c.Request().Context(), queries.NewGetStoresQuery())
	if err != nil {
		return s.fail(c, err, "retrieve stores")
	}

	return c.JSON(http.StatusOK, toStores(stores))
}

// CreateStore handles POST /api/v1/stores. Without coordinates the store is
// placed at random near the origin.
func (s *Server) CreateStore(c echo.Context) error {
	var body NewStore
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	location, err := body.location()
	if err != nil {
		return s.fail(c, err, "create store")
	}

	cmd, err := commands.NewAddStoreCommand(body.Name, location, body.Category, body.Address)
	if err != nil {
		return s.fail(c, err, "create store")
	}

	if err := s.handlers.AddStore.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "create store")
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.StoreID().String()})
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	couriers, err := s.handlers.GetCouriers.Handle(c.Request().Context(), queries.NewGetCouriersQuery())
	if err != nil {
		return s.fail(c, err, "retrieve couriers")
	}

	return c.JSON(http.StatusOK, toCouriers(couriers))
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var body NewPerson
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	location, err := body.location()
	if err != nil {
		return s.fail(c, err, "create courier")
	}

	cmd, err := commands.NewAddCourierCommand(body.Name, location)
	if err != nil {
		return s.fail(c, err, "create courier")
	}

	if err := s.handlers.AddCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "create courier")
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.CourierID().String()})
}

// ChangeCourierAvailability handles PUT /api/v1/couriers/{courierId}/availability.
func (s *Server) ChangeCourierAvailability(c echo.Context) error {
	var body Availability
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	courierID, err := kernel.ParseID(kernel.KindCourier, c.Param("courierId"))
	if err != nil {
		return s.fail(c, err, "change courier availability")
	}

	cmd, err := commands.NewChangeCourierAvailabilityCommand(courierID, body.Online)
	if err != nil {
		return s.fail(c, err, "change courier availability")
	}

	if err := s.handlers.ChangeCourierAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "change courier availability")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCustomers handles GET /api/v1/customers.
func (s *Server) GetCustomers(c echo.Context) error {
	customers, err := s.handlers.GetCustomers.Handle(c.Request().Context(), queries.NewGetCustomersQuery())
	if err != nil {
		return s.fail(c, err, "retrieve customers")
	}

	return c.JSON(http.StatusOK, toCustomers(customers))
}

// CreateCustomer handles POST /api/v1/customers.
func (s *Server) CreateCustomer(c echo.Context) error {
	var body NewPerson
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	location, err := body.location()
	if err != nil {
		return s.fail(c, err, "create customer")
	}

	cmd, err := commands.NewAddCustomerCommand(body.Name, location)
	if err != nil {
		return s.fail(c, err, "create customer")
	}

	if err := s.handlers.AddCustomer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "create customer")
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.CustomerID().String()})
}

// GetOrders handles GET /api/v1/orders. ?active=true hides delivered orders.
func (s *Server) GetOrders(c echo.Context) error {
	onlyActive := false
	if raw := c.QueryParam("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "Invalid request: active must be a boolean")
		}
		onlyActive = parsed
	}

	orders, err := s.handlers.GetOrders.Handle(c.Request().Context(), queries.NewGetOrdersQuery(onlyActive))
	if err != nil {
		return s.fail(c, err, "retrieve orders")
	}

	return c.JSON(http.StatusOK, toOrders(orders))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	customerID, err := kernel.ParseID(kernel.KindCustomer, body.CustomerID)
	if err != nil {
		return s.fail(c, err, "create order")
	}
	storeID, err := kernel.ParseID(kernel.KindStore, body.StoreID)
	if err != nil {
		return s.fail(c, err, "create order")
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, storeID)
	if err != nil {
		return s.fail(c, err, "create order")
	}

	if err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "create order")
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.OrderID().String()})
}

// RecommendCourier handles POST /api/v1/orders/{orderId}/recommendation.
// The answer is advisory; nothing is assigned.
func (s *Server) RecommendCourier(c echo.Context) error {
	orderID, err := kernel.ParseID(kernel.KindOrder, c.Param("orderId"))
	if err != nil {
		return s.fail(c, err, "recommend courier")
	}

	query, err := queries.NewRecommendCourierQuery(orderID)
	if err != nil {
		return s.fail(c, err, "recommend courier")
	}

	rec, err := s.handlers.RecommendCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "recommend courier")
	}

	return c.JSON(http.StatusOK, toRecommendation(rec))
}

// AssignCourier handles POST /api/v1/orders/{orderId}/assignment.
func (s *Server) AssignCourier(c echo.Context) error {
	var body Assignment
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID, err := kernel.ParseID(kernel.KindOrder, c.Param("orderId"))
	if err != nil {
		return s.fail(c, err, "assign courier")
	}
	courierID, err := kernel.ParseID(kernel.KindCourier, body.CourierID)
	if err != nil {
		return s.fail(c, err, "assign courier")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return s.fail(c, err, "assign courier")
	}

	if err := s.handlers.AssignCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "assign courier")
	}

	return c.NoContent(http.StatusNoContent)
}

// BeginTransit handles POST /api/v1/orders/{orderId}/transit.
func (s *Server) BeginTransit(c echo.Context) error {
	orderID, err := kernel.ParseID(kernel.KindOrder, c.Param("orderId"))
	if err != nil {
		return s.fail(c, err, "begin transit")
	}

	cmd, err := commands.NewBeginTransitCommand(orderID)
	if err != nil {
		return s.fail(c, err, "begin transit")
	}

	if err := s.handlers.BeginTransit.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "begin transit")
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/orders/{orderId}/delivery.
func (s *Server) MarkDelivered(c echo.Context) error {
	orderID, err := kernel.ParseID(kernel.KindOrder, c.Param("orderId"))
	if err != nil {
		return s.fail(c, err, "mark delivered")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return s.fail(c, err, "mark delivered")
	}

	if err := s.handlers.MarkDelivered.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err, "mark delivered")
	}

	return c.NoContent(http.StatusNoContent)
}
