package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/memory"
	"lastmile/internal/adapters/out/otelmetrics"
	"lastmile/internal/adapters/out/reasoning"
	"lastmile/internal/adapters/out/redisgeo"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	entities   *memory.EntityStore
	uowFactory *memory.UnitOfWorkFactory
	spawnArea  *commands.SpawnArea

	meterProvider *sdkmetric.MeterProvider
	recommender   ports.Recommender

	redisClient  *redis.Client
	positionFeed ports.PositionFeed
}

// NewCompositionRoot builds the shared infrastructure. Redis and the
// reasoning service are only wired when configured.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	origin, err := kernel.NewLocation(cfg.OriginLat, cfg.OriginLng)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	spawnArea, err := commands.NewSpawnArea(origin, cfg.SpawnSpread, newRand())
	if err != nil {
		return nil, fmt.Errorf("spawn area: %w", err)
	}

	entities := memory.NewEntityStore()
	c := &CompositionRoot{
		cfg:           cfg,
		logger:        logger,
		entities:      entities,
		uowFactory:    memory.NewUnitOfWorkFactory(entities),
		spawnArea:     spawnArea,
		meterProvider: sdkmetric.NewMeterProvider(),
	}

	if c.recommender, err = c.newRecommender(); err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}

	if cfg.RedisAddr != "" {
		c.redisClient, err = redisgeo.NewClient(ctx, redisgeo.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, errors.Join(err, c.Close(ctx))
		}
		c.positionFeed = redisgeo.NewPositionFeed(c.redisClient, redisgeo.DefaultKey)
		logger.InfoContext(ctx, "publishing courier positions to redis", "address", cfg.RedisAddr)
	}

	return c, nil
}

func (c *CompositionRoot) newRecommender() (ports.Recommender, error) {
	observer, err := otelmetrics.NewDispatchObserver(c.meterProvider.Meter("lastmile/dispatch"))
	if err != nil {
		return nil, err
	}

	var primary ports.Recommender
	if c.cfg.ReasoningURL != "" {
		client, err := reasoning.NewClient(reasoning.Options{
			URL:        c.cfg.ReasoningURL,
			APIKey:     c.cfg.ReasoningAPIKey,
			HTTPClient: &http.Client{Timeout: c.cfg.ReasoningTimeout},
		})
		if err != nil {
			return nil, err
		}
		primary = client
	} else {
		c.logger.Info("no reasoning service configured, recommendations use the nearest courier")
	}

	return services.NewFallbackRecommender(
		primary,
		services.NewNearestCourierRecommender(c.cfg.AverageSpeedKmh),
		c.cfg.ReasoningTimeout,
		observer,
		c.logger,
	)
}

// Close releases the external connections.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	errs = append(errs, c.meterProvider.Shutdown(ctx))
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreateAddStoreCommandHandler() commands.AddStoreCommandHandler {
	var f commands.StoreUoWFactory = FuncStoreUoWFactory(func() commands.StoreUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddStoreCommandHandler(f, c.spawnArea)
}

func (c *CompositionRoot) CreateAddCourierCommandHandler() commands.AddCourierCommandHandler {
	return commands.NewAddCourierCommandHandler(c.courierUoWFactory(), c.spawnArea, nil)
}

func (c *CompositionRoot) CreateAddCustomerCommandHandler() commands.AddCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCustomerCommandHandler(f, c.spawnArea)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), nil)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.orderUoWFactory(), nil)
}

func (c *CompositionRoot) CreateBeginTransitCommandHandler() commands.BeginTransitCommandHandler {
	return commands.NewBeginTransitCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory(), nil)
}

func (c *CompositionRoot) CreateChangeCourierAvailabilityCommandHandler() commands.ChangeCourierAvailabilityCommandHandler {
	return commands.NewChangeCourierAvailabilityCommandHandler(c.courierUoWFactory(), c.positionFeed, nil)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() (*commands.MoveCouriersCommandHandler, error) {
	return commands.NewMoveCouriersCommandHandler(
		c.courierUoWFactory(),
		newRand(),
		c.cfg.MovementJitter,
		c.positionFeed,
		nil,
	)
}

func (c *CompositionRoot) CreateGetStoresQueryHandler() queries.GetStoresQueryHandler {
	return queries.NewGetStoresQueryHandler(c.entities)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.entities)
}

func (c *CompositionRoot) CreateGetCustomersQueryHandler() queries.GetCustomersQueryHandler {
	return queries.NewGetCustomersQueryHandler(c.entities)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.entities)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.entities)
}

func (c *CompositionRoot) CreateRecommendCourierQueryHandler() queries.RecommendCourierQueryHandler {
	return queries.NewRecommendCourierQueryHandler(c.entities, c.recommender)
}

func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*httpin.Server, error) {
	return httpin.NewServer(ctx, httpin.Handlers{
		AddStore:                  c.CreateAddStoreCommandHandler(),
		AddCourier:                c.CreateAddCourierCommandHandler(),
		AddCustomer:               c.CreateAddCustomerCommandHandler(),
		CreateOrder:               c.CreateCreateOrderCommandHandler(),
		AssignCourier:             c.CreateAssignCourierCommandHandler(),
		BeginTransit:              c.CreateBeginTransitCommandHandler(),
		MarkDelivered:             c.CreateMarkDeliveredCommandHandler(),
		ChangeCourierAvailability: c.CreateChangeCourierAvailabilityCommandHandler(),
		GetStores:                 c.CreateGetStoresQueryHandler(),
		GetCouriers:               c.CreateGetCouriersQueryHandler(),
		GetCustomers:              c.CreateGetCustomersQueryHandler(),
		GetOrders:                 c.CreateGetOrdersQueryHandler(),
		GetDashboard:              c.CreateGetDashboardQueryHandler(),
		RecommendCourier:          c.CreateRecommendCourierQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	moveCouriers, err := c.CreateMoveCouriersCommandHandler()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(moveCouriers, c.cfg.MovementInterval, c.logger), nil
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// newRand seeds a generator from the clock. Callers must not share it across
// goroutines without their own locking.
func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

type FuncStoreUoWFactory func() commands.StoreUoW

func (f FuncStoreUoWFactory) Create() commands.StoreUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
