package reasoning

import (
	"lastmile/internal/core/domain/model/dispatch"
)

// Rules is the ranking policy sent with every request.
var Rules = []string{
	"Primary factor: lowest distance to store.",
	"Secondary factor: courier positioning relative to the final destination.",
	"Provide a short, logical reasoning.",
}

type placeDTO struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type courierDTO struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	DistanceToStore         float64 `json:"distanceToStore"`
	DistanceStoreToCustomer float64 `json:"distanceStoreToCustomer"`
}

type requestDTO struct {
	OrderID           string       `json:"orderId"`
	Customer          placeDTO     `json:"customer"`
	Store             placeDTO     `json:"store"`
	AvailableCouriers []courierDTO `json:"availableCouriers"`
	Rules             []string     `json:"rules"`
}

type responseDTO struct {
	SuggestedCourierID string `json:"suggestedCourierId"`
	Reasoning          string `json:"reasoning"`
	EstimatedTime      string `json:"estimatedTime"`
}

func toRequestDTO(req dispatch.Request) requestDTO {
	couriers := make([]courierDTO, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		couriers = append(couriers, courierDTO{
			ID:                      c.CourierID.String(),
			Name:                    c.Name,
			DistanceToStore:         c.DistanceToStore,
			DistanceStoreToCustomer: req.DistanceStoreToCustomer,
		})
	}

	return requestDTO{
		OrderID:           req.OrderID.String(),
		Customer:          toPlaceDTO(req.Customer),
		Store:             toPlaceDTO(req.Store),
		AvailableCouriers: couriers,
		Rules:             Rules,
	}
}

func toPlaceDTO(p dispatch.Place) placeDTO {
	return placeDTO{
		Name: p.Name,
		Lat:  p.Location.Lat(),
		Lng:  p.Location.Lng(),
	}
}
