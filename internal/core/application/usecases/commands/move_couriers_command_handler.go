package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// DefaultMovementJitter is the per-axis bound, in degrees, of one movement tick.
const DefaultMovementJitter = 0.0001

// MoveCouriersCommandHandler orchestrates the movement of the fleet.
// Offline couriers never move. Busy couriers move like available ones: the
// simulation models GPS noise, not travel towards a destination.
//
// Example:
//
//	handler, err := NewMoveCouriersCommandHandler(uowFactory, rand.New(rand.NewPCG(1, 2)), 0.0001, nil, nil)
//	if err != nil {
//	    return err
//	}
//
//	if err := handler.Handle(ctx, NewMoveCouriersCommand()); err != nil {
//	    return fmt.Errorf("courier movement failed: %w", err)
//	}
type MoveCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
	jitter     float64
	feed       ports.PositionFeed
	clock      Clock

	mu  sync.Mutex
	rnd kernel.RandomSource
}

// NewMoveCouriersCommandHandler creates a handler for courier movement operations.
// feed is optional; when set, moved positions are published after commit.
// A nil clock uses time.Now.
func NewMoveCouriersCommandHandler(
	uowFactory CourierUoWFactory,
	rnd kernel.RandomSource,
	jitter float64,
	feed ports.PositionFeed,
	clock Clock,
) (*MoveCouriersCommandHandler, error) {
	if rnd == nil {
		return nil, errs.NewValueIsRequiredError("rnd")
	}
	if jitter < 0 || math.IsNaN(jitter) {
		return nil, errs.NewValueIsOutOfRangeError("jitter", jitter, 0, "+Inf")
	}

	return &MoveCouriersCommandHandler{
		uowFactory: uowFactory,
		jitter:     jitter,
		feed:       feed,
		clock:      clock,
		rnd:        rnd,
	}, nil
}

// Handle processes the courier movement command.
// All moves of a tick are committed together, so readers see either the
// previous or the new position of every courier.
func (h *MoveCouriersCommandHandler) Handle(ctx context.Context, cmd MoveCouriersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	moved, err := h.move(ctx)
	if err != nil {
		return err
	}

	if h.feed == nil || len(moved) == 0 {
		return nil
	}
	if err = h.feed.PublishPositions(ctx, moved); err != nil {
		return fmt.Errorf("publish positions: %w", err)
	}

	return nil
}

func (h *MoveCouriersCommandHandler) move(ctx context.Context) ([]*courier.Courier, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	couriers, err := courierRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	moved := make([]*courier.Courier, 0, len(couriers))

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range couriers {
		if c.IsOffline() {
			continue
		}

		dLat, dLng := kernel.Jitter(h.rnd, h.jitter), kernel.Jitter(h.rnd, h.jitter)
		if err = c.Drift(dLat, dLng, now); err != nil {
			// a courier at the edge of the map stays put for this tick
			if errors.Is(err, errs.ErrValueIsOutOfRange) {
				continue
			}
			return nil, err
		}

		if err = courierRepo.Update(ctx, c); err != nil {
			return nil, err
		}
		moved = append(moved, c)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return moved, nil
}
