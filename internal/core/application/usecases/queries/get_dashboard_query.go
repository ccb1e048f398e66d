package queries

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetDashboardQueryIsNotConstructed = errors.New(
		"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
	)
)

// GetDashboardQuery computes the live counters shown next to the map.
type GetDashboardQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDashboardQuery() GetDashboardQuery {
	return GetDashboardQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

// GetDashboardQueryResponse holds counters taken from one snapshot.
type GetDashboardQueryResponse struct {
	Stores            int
	ActiveCustomers   int
	BusyCouriers      int
	AvailableCouriers int
	OfflineCouriers   int
	PendingOrders     int
	ActiveOrders      int
}

type GetDashboardQueryHandler struct {
	reader ports.SnapshotReader
}

func NewGetDashboardQueryHandler(reader ports.SnapshotReader) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{reader: reader}
}

func (h GetDashboardQueryHandler) Handle(ctx context.Context, query GetDashboardQuery) (GetDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardQueryResponse{}, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return GetDashboardQueryResponse{}, err
	}

	resp := GetDashboardQueryResponse{Stores: len(snapshot.Stores)}
	for _, c := range snapshot.Customers {
		if c.HasActiveOrder() {
			resp.ActiveCustomers++
		}
	}
	for _, c := range snapshot.Couriers {
		switch c.Status() {
		case courier.Available:
			resp.AvailableCouriers++
		case courier.Busy:
			resp.BusyCouriers++
		case courier.Offline:
			resp.OfflineCouriers++
		}
	}
	for _, o := range snapshot.Orders {
		if o.IsPending() {
			resp.PendingOrders++
		}
		if o.IsActive() {
			resp.ActiveOrders++
		}
	}

	return resp, nil
}
