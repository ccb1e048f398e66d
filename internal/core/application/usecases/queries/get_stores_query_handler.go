package queries

import (
	"context"

	"lastmile/internal/core/ports"
)

// GetStoresQueryHandler reads stores from a snapshot.
type GetStoresQueryHandler struct {
	reader ports.SnapshotReader
}

func NewGetStoresQueryHandler(reader ports.SnapshotReader) GetStoresQueryHandler {
	return GetStoresQueryHandler{reader: reader}
}

func (h GetStoresQueryHandler) Handle(ctx context.Context, query GetStoresQuery) ([]GetStoresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.reader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	stores := make([]GetStoresQueryResponse, 0, len(snapshot.Stores))
	for _, s := range snapshot.Stores {
		stores = append(stores, GetStoresQueryResponse{
			ID:       s.ID(),
			Name:     s.Name(),
			Location: s.Location(),
			Category: s.Category(),
			Address:  s.Address(),
		})
	}

	return stores, nil
}
