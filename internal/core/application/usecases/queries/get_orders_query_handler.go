package queries

import (
	"context"

	"lastmile/internal/core/ports"
)

// GetOrdersQueryHandler retrieves orders from a snapshot.
type GetOrdersQueryHandler struct {
	reader ports.SnapshotReader
}

func NewGetOrdersQueryHandler(reader ports.SnapshotReader) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{reader: reader}
}

// Handle returns orders in creation order, delivered ones excluded when the
// query asks for active orders only.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]GetOrdersQueryResponse, 0, len(snapshot.Orders))
	for _, o := range snapshot.Orders {
		if query.OnlyActive() && !o.IsActive() {
			continue
		}

		courierID, _ := o.Courier()
		orders = append(orders, GetOrdersQueryResponse{
			ID:         o.ID(),
			CustomerID: o.Customer(),
			StoreID:    o.Store(),
			CourierID:  courierID,
			Status:     o.Status(),
			CreatedAt:  o.CreatedAt(),
		})
	}

	return orders, nil
}
