package cmd

import (
	"context"
	"fmt"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
)

type seedStore struct {
	name, category, address string
	lat, lng                float64
}

type seedPerson struct {
	name     string
	lat, lng float64
}

var (
	demoStores = []seedStore{
		{name: "McDonald's Maarif", lat: 33.5822, lng: -7.6325, category: "restaurant", address: "Boulevard Al Massira Al Khadra"},
		{name: "Burger King Anfa", lat: 33.5951, lng: -7.6432, category: "restaurant", address: "Bd de la Corniche"},
		{name: "Carrefour Market Gauthier", lat: 33.5864, lng: -7.6252, category: "grocery", address: "Rue de la Liberté"},
		{name: "Pharmacie du Port", lat: 33.5990, lng: -7.6150, category: "pharmacy", address: "Place des Nations Unies"},
	}
	demoCouriers = []seedPerson{
		{name: "Yassine", lat: 33.5850, lng: -7.6100},
		{name: "Fatima", lat: 33.5750, lng: -7.6300},
		{name: "Omar", lat: 33.5900, lng: -7.6500},
	}
	demoCustomers = []seedPerson{
		{name: "Khalid Alami", lat: 33.5780, lng: -7.6200},
		{name: "Siham Tazi", lat: 33.5650, lng: -7.6400},
	}
)

// SeedDemoData fills the store with a Casablanca demo: four stores, three
// couriers and two customers. Siham Tazi has ordered from McDonald's Maarif
// and Omar is carrying it, so the map starts with one busy courier.
// Everything goes through the regular command handlers.
func SeedDemoData(ctx context.Context, root *CompositionRoot) error {
	addStore := root.CreateAddStoreCommandHandler()
	addCourier := root.CreateAddCourierCommandHandler()
	addCustomer := root.CreateAddCustomerCommandHandler()
	createOrder := root.CreateCreateOrderCommandHandler()
	assignCourier := root.CreateAssignCourierCommandHandler()

	storeIDs := make([]kernel.ID, 0, len(demoStores))
	for _, s := range demoStores {
		location, err := kernel.NewLocation(s.lat, s.lng)
		if err != nil {
			return fmt.Errorf("seed store %s: %w", s.name, err)
		}
		cmd, err := commands.NewAddStoreCommand(s.name, location, s.category, s.address)
		if err != nil {
			return fmt.Errorf("seed store %s: %w", s.name, err)
		}
		if err := addStore.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("seed store %s: %w", s.name, err)
		}
		storeIDs = append(storeIDs, cmd.StoreID())
	}

	courierIDs := make([]kernel.ID, 0, len(demoCouriers))
	for _, p := range demoCouriers {
		location, err := kernel.NewLocation(p.lat, p.lng)
		if err != nil {
			return fmt.Errorf("seed courier %s: %w", p.name, err)
		}
		cmd, err := commands.NewAddCourierCommand(p.name, location)
		if err != nil {
			return fmt.Errorf("seed courier %s: %w", p.name, err)
		}
		if err := addCourier.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("seed courier %s: %w", p.name, err)
		}
		courierIDs = append(courierIDs, cmd.CourierID())
	}

	customerIDs := make([]kernel.ID, 0, len(demoCustomers))
	for _, p := range demoCustomers {
		location, err := kernel.NewLocation(p.lat, p.lng)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", p.name, err)
		}
		cmd, err := commands.NewAddCustomerCommand(p.name, location)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", p.name, err)
		}
		if err := addCustomer.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("seed customer %s: %w", p.name, err)
		}
		customerIDs = append(customerIDs, cmd.CustomerID())
	}

	order, err := commands.NewCreateOrderCommand(customerIDs[1], storeIDs[0])
	if err != nil {
		return fmt.Errorf("seed order: %w", err)
	}
	if err := createOrder.Handle(ctx, order); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}

	assign, err := commands.NewAssignCourierCommand(order.OrderID(), courierIDs[2])
	if err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}
	if err := assignCourier.Handle(ctx, assign); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}

	root.logger.InfoContext(ctx, "demo data seeded",
		"stores", len(storeIDs),
		"couriers", len(courierIDs),
		"customers", len(customerIDs))
	return nil
}
