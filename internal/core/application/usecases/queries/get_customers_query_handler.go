package queries

import (
	"context"

	"lastmile/internal/core/ports"
)

type GetCustomersQueryHandler struct {
	reader ports.SnapshotReader
}

func NewGetCustomersQueryHandler(reader ports.SnapshotReader) GetCustomersQueryHandler {
	return GetCustomersQueryHandler{reader: reader}
}

func (h GetCustomersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomersQuery,
) ([]GetCustomersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]GetCustomersQueryResponse, 0, len(snapshot.Customers))
	for _, c := range snapshot.Customers {
		activeOrderID, ok := c.ActiveOrder()
		customers = append(customers, GetCustomersQueryResponse{
			ID:             c.ID(),
			Name:           c.Name(),
			Location:       c.Location(),
			HasActiveOrder: ok,
			ActiveOrderID:  activeOrderID,
		})
	}

	return customers, nil
}
