package cmd_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile/cmd"
	"lastmile/internal/adapters/out/redisgeo"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
)

func newRoot(t *testing.T, cfg cmd.Config) *cmd.CompositionRoot {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root, err := cmd.NewCompositionRoot(t.Context(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close(context.Background()) })
	return root
}

func TestSeedDemoData(t *testing.T) {
	// Given
	root := newRoot(t, cmd.DefaultConfig())

	// When
	err := cmd.SeedDemoData(t.Context(), root)

	// Then
	require.NoError(t, err)
	dashboard, err := root.CreateGetDashboardQueryHandler().Handle(t.Context(), queries.NewGetDashboardQuery())
	require.NoError(t, err)
	assert.Equal(t, queries.GetDashboardQueryResponse{
		Stores:            4,
		ActiveCustomers:   1,
		BusyCouriers:      1,
		AvailableCouriers: 2,
		ActiveOrders:      1,
	}, dashboard)

	couriers, err := root.CreateGetCouriersQueryHandler().Handle(t.Context(), queries.NewGetCouriersQuery())
	require.NoError(t, err)
	require.Len(t, couriers, 3)
	assert.Equal(t, "Omar", couriers[2].Name)
	assert.Equal(t, "busy", couriers[2].Status.String())
}

func TestCompositionRoot_MovementPublishesToRedis(t *testing.T) {
	// Given
	server := miniredis.RunT(t)
	cfg := cmd.DefaultConfig()
	cfg.RedisAddr = server.Addr()
	root := newRoot(t, cfg)
	require.NoError(t, cmd.SeedDemoData(t.Context(), root))
	move, err := root.CreateMoveCouriersCommandHandler()
	require.NoError(t, err)

	// When
	err = move.Handle(t.Context(), commands.NewMoveCouriersCommand())

	// Then
	require.NoError(t, err)
	members, err := server.ZMembers(redisgeo.DefaultKey)
	require.NoError(t, err)
	assert.Len(t, members, 3)
}

func TestCompositionRoot_OfflineCourierLeavesRedis(t *testing.T) {
	// Given
	server := miniredis.RunT(t)
	cfg := cmd.DefaultConfig()
	cfg.RedisAddr = server.Addr()
	root := newRoot(t, cfg)
	require.NoError(t, cmd.SeedDemoData(t.Context(), root))
	move, err := root.CreateMoveCouriersCommandHandler()
	require.NoError(t, err)
	require.NoError(t, move.Handle(t.Context(), commands.NewMoveCouriersCommand()))
	couriers, err := root.CreateGetCouriersQueryHandler().Handle(t.Context(), queries.NewGetCouriersQuery())
	require.NoError(t, err)
	parked := couriers[0].ID
	offline, err := commands.NewChangeCourierAvailabilityCommand(parked, false)
	require.NoError(t, err)

	// When
	err = root.CreateChangeCourierAvailabilityCommandHandler().Handle(t.Context(), offline)

	// Then
	require.NoError(t, err)
	members, err := server.ZMembers(redisgeo.DefaultKey)
	require.NoError(t, err)
	assert.Len(t, members, 2)
	assert.NotContains(t, members, parked.String())
}

func TestCompositionRoot_FailsWithoutRedis(t *testing.T) {
	server := miniredis.RunT(t)
	cfg := cmd.DefaultConfig()
	cfg.RedisAddr = server.Addr()
	server.Close()

	_, err := cmd.NewCompositionRoot(t.Context(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
}

func TestCompositionRoot_CreateHTTPServer(t *testing.T) {
	root := newRoot(t, cmd.DefaultConfig())
	require.NoError(t, cmd.SeedDemoData(t.Context(), root))
	server, err := root.CreateHTTPServer(t.Context())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pharmacie du Port")
}

func TestCompositionRoot_CreateJobManager(t *testing.T) {
	root := newRoot(t, cmd.DefaultConfig())

	manager, err := root.CreateJobManager()

	require.NoError(t, err)
	assert.NotNil(t, manager)
}
