package http

import (
	"time"

	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/domain/model/kernel"
)

// Error is the body of every non 2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID string `json:"id"`
}

// NewPerson is the body of POST /couriers and POST /customers.
// lat and lng are optional but must be given together.
type NewPerson struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

type NewStore struct {
	NewPerson
	Category string `json:"category,omitempty"`
	Address  string `json:"address,omitempty"`
}

type NewOrder struct {
	CustomerID string `json:"customerId"`
	StoreID    string `json:"storeId"`
}

type Assignment struct {
	CourierID string `json:"courierId"`
}

type Availability struct {
	Online bool `json:"online"`
}

type Store struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category"`
	Address  string  `json:"address"`
}

type Courier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type Customer struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	HasActiveOrder bool    `json:"hasActiveOrder"`
	ActiveOrderID  string  `json:"activeOrderId,omitempty"`
}

type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	StoreID    string    `json:"storeId"`
	CourierID  string    `json:"courierId,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Recommendation struct {
	OrderID              string  `json:"orderId"`
	SuggestedCourierID   string  `json:"suggestedCourierId"`
	Reasoning            string  `json:"reasoning"`
	EstimatedTime        string  `json:"estimatedTime"`
	Source               string  `json:"source"`
	DistanceToStore      float64 `json:"distanceToStore"`
	DistanceToStoreLabel string  `json:"distanceToStoreLabel"`
}

type Dashboard struct {
	Stores            int `json:"stores"`
	ActiveCustomers   int `json:"activeCustomers"`
	BusyCouriers      int `json:"busyCouriers"`
	AvailableCouriers int `json:"availableCouriers"`
	OfflineCouriers   int `json:"offlineCouriers"`
	PendingOrders     int `json:"pendingOrders"`
	ActiveOrders      int `json:"activeOrders"`
}

// location turns the optional coordinates into a Location. The zero Location
// asks the command handler for a random position near the origin.
func (p NewPerson) location() (kernel.Location, error) {
	switch {
	case p.Lat == nil && p.Lng == nil:
		return kernel.Location{}, nil
	case p.Lat == nil:
		return kernel.Location{}, errLatIsRequired
	case p.Lng == nil:
		return kernel.Location{}, errLngIsRequired
	default:
		return kernel.NewLocation(*p.Lat, *p.Lng)
	}
}

func toStores(rows []queries.GetStoresQueryResponse) []Store {
	out := make([]Store, len(rows))
	for i, s := range rows {
		out[i] = Store{
			ID:       s.ID.String(),
			Name:     s.Name,
			Lat:      s.Location.Lat(),
			Lng:      s.Location.Lng(),
			Category: string(s.Category),
			Address:  s.Address,
		}
	}
	return out
}

func toCouriers(rows []queries.GetCouriersQueryResponse) []Courier {
	out := make([]Courier, len(rows))
	for i, c := range rows {
		out[i] = Courier{
			ID:          c.ID.String(),
			Name:        c.Name,
			Lat:         c.Location.Lat(),
			Lng:         c.Location.Lng(),
			Status:      c.Status.String(),
			LastUpdated: c.LastUpdated,
		}
	}
	return out
}

func toCustomers(rows []queries.GetCustomersQueryResponse) []Customer {
	out := make([]Customer, len(rows))
	for i, c := range rows {
		out[i] = Customer{
			ID:             c.ID.String(),
			Name:           c.Name,
			Lat:            c.Location.Lat(),
			Lng:            c.Location.Lng(),
			HasActiveOrder: c.HasActiveOrder,
			ActiveOrderID:  c.ActiveOrderID.String(),
		}
	}
	return out
}

func toOrders(rows []queries.GetOrdersQueryResponse) []Order {
	out := make([]Order, len(rows))
	for i, o := range rows {
		out[i] = Order{
			ID:         o.ID.String(),
			CustomerID: o.CustomerID.String(),
			StoreID:    o.StoreID.String(),
			CourierID:  o.CourierID.String(),
			Status:     o.Status.String(),
			CreatedAt:  o.CreatedAt,
		}
	}
	return out
}

func toRecommendation(rec dispatch.Recommendation) Recommendation {
	return Recommendation{
		OrderID:              rec.OrderID.String(),
		SuggestedCourierID:   rec.CourierID.String(),
		Reasoning:            rec.Reasoning,
		EstimatedTime:        rec.EstimatedTime,
		Source:               rec.Source.String(),
		DistanceToStore:      rec.DistanceToStore,
		DistanceToStoreLabel: kernel.FormatDistance(rec.DistanceToStore),
	}
}

func toDashboard(d queries.GetDashboardQueryResponse) Dashboard {
	return Dashboard{
		Stores:            d.Stores,
		ActiveCustomers:   d.ActiveCustomers,
		BusyCouriers:      d.BusyCouriers,
		AvailableCouriers: d.AvailableCouriers,
		OfflineCouriers:   d.OfflineCouriers,
		PendingOrders:     d.PendingOrders,
		ActiveOrders:      d.ActiveOrders,
	}
}
