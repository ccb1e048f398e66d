package queries

import (
	"context"

	"lastmile/internal/core/ports"
)

// GetCouriersQueryHandler retrieves all courier information from a snapshot.
// The snapshot is taken under a read lock, so a movement tick is observed
// either entirely or not at all.
//
// Example:
//
//	handler := NewGetCouriersQueryHandler(reader)
//	couriers, err := handler.Handle(ctx, NewGetCouriersQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Found %d couriers\n", len(couriers))
type GetCouriersQueryHandler struct {
	reader ports.SnapshotReader
}

// NewGetCouriersQueryHandler creates a handler for courier retrieval queries.
func NewGetCouriersQueryHandler(reader ports.SnapshotReader) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{reader: reader}
}

// Handle executes the query to retrieve all couriers in insertion order.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	couriers := make([]GetCouriersQueryResponse, 0, len(snapshot.Couriers))
	for _, c := range snapshot.Couriers {
		couriers = append(couriers, GetCouriersQueryResponse{
			ID:          c.ID(),
			Name:        c.Name(),
			Location:    c.Location(),
			Status:      c.Status(),
			LastUpdated: c.LastUpdated(),
		})
	}

	return couriers, nil
}
