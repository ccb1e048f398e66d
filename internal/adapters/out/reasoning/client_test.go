package reasoning_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile/internal/adapters/out/reasoning"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
)

type wireRequest struct {
	OrderID  string `json:"orderId"`
	Customer struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	} `json:"customer"`
	Store struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	} `json:"store"`
	AvailableCouriers []struct {
		ID                      string  `json:"id"`
		Name                    string  `json:"name"`
		DistanceToStore         float64 `json:"distanceToStore"`
		DistanceStoreToCustomer float64 `json:"distanceStoreToCustomer"`
	} `json:"availableCouriers"`
	Rules []string `json:"rules"`
}

func newRequest(t *testing.T) dispatch.Request {
	t.Helper()
	s, err := store.NewStore(kernel.NewID(kernel.KindStore), "Marjane", mustLocation(t, 33.60, -7.61), store.Grocery, "")
	require.NoError(t, err)
	c, err := customer.NewCustomer(kernel.NewID(kernel.KindCustomer), "Amine", mustLocation(t, 33.58, -7.62))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewID(kernel.KindOrder), c.ID(), s.ID(), time.Now())
	require.NoError(t, err)
	a, err := courier.NewCourier(kernel.NewID(kernel.KindCourier), "A", mustLocation(t, 33.609, -7.61), time.Now())
	require.NoError(t, err)
	b, err := courier.NewCourier(kernel.NewID(kernel.KindCourier), "B", mustLocation(t, 33.6027, -7.61), time.Now())
	require.NoError(t, err)

	req, err := dispatch.NewRequest(o, c, s, []*courier.Courier{a, b})
	require.NoError(t, err)
	return req
}

func mustLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func newClient(t *testing.T, url string) *reasoning.Client {
	t.Helper()
	client, err := reasoning.NewClient(reasoning.Options{
		URL:            url,
		APIKey:         "secret",
		InitialBackoff: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClient(t *testing.T) {
	_, err := reasoning.NewClient(reasoning.Options{URL: "  "})

	require.ErrorIs(t, err, reasoning.ErrURLIsRequired)
}

func TestClient_Recommend(t *testing.T) {
	t.Run("should send the dispatch request and accept the answer", func(t *testing.T) {
		// Given
		req := newRequest(t)
		b := req.Candidates[1]
		var got wireRequest
		var auth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			raw, _ := io.ReadAll(r.Body)
			assert.NoError(t, jsoniter.Unmarshal(raw, &got))
			reply(w, http.StatusOK, `{"suggestedCourierId":"`+b.CourierID.String()+
				`","reasoning":" B is closest to the store ","estimatedTime":"~9 min"}`)
		}))
		defer server.Close()

		// When
		rec, err := newClient(t, server.URL).Recommend(t.Context(), req)

		// Then
		require.NoError(t, err)
		assert.Equal(t, dispatch.Recommendation{
			OrderID:       req.OrderID,
			CourierID:     b.CourierID,
			Reasoning:     "B is closest to the store",
			EstimatedTime: "~9 min",
			Source:        dispatch.SourceReasoningService,

			DistanceToStore: b.DistanceToStore,
		}, rec)

		assert.Equal(t, "Bearer secret", auth)
		assert.Equal(t, req.OrderID.String(), got.OrderID)
		assert.Equal(t, "Amine", got.Customer.Name)
		assert.InDelta(t, 33.58, got.Customer.Lat, 1e-6)
		assert.Equal(t, "Marjane", got.Store.Name)
		assert.InDelta(t, -7.61, got.Store.Lng, 1e-6)
		require.Len(t, got.AvailableCouriers, 2)
		assert.Equal(t, "A", got.AvailableCouriers[0].Name)
		assert.InDelta(t, req.Candidates[0].DistanceToStore, got.AvailableCouriers[0].DistanceToStore, 1e-3)
		assert.InDelta(t, req.DistanceStoreToCustomer, got.AvailableCouriers[1].DistanceStoreToCustomer, 1e-3)
		assert.Equal(t, reasoning.Rules, got.Rules)
	})

	t.Run("should retry transient failures", func(t *testing.T) {
		req := newRequest(t)
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch calls.Add(1) {
			case 1:
				reply(w, http.StatusTooManyRequests, `{"error":"slow down"}`)
			case 2:
				reply(w, http.StatusBadGateway, `upstream`)
			default:
				reply(w, http.StatusOK, `{"suggestedCourierId":"`+req.Candidates[0].CourierID.String()+
					`","reasoning":"r","estimatedTime":"~5 min"}`)
			}
		}))
		defer server.Close()

		rec, err := newClient(t, server.URL).Recommend(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, req.Candidates[0].CourierID, rec.CourierID)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("should give up after the retry budget", func(t *testing.T) {
		req := newRequest(t)
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			reply(w, http.StatusServiceUnavailable, `down`)
		}))
		defer server.Close()

		_, err := newClient(t, server.URL).Recommend(t.Context(), req)

		require.ErrorIs(t, err, dispatch.ErrRecommenderUnreachable)
		assert.Contains(t, err.Error(), "code 503")
		assert.Equal(t, int32(1+reasoning.DefaultMaxRetries), calls.Load())
	})

	t.Run("should not retry client errors", func(t *testing.T) {
		req := newRequest(t)
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			reply(w, http.StatusUnauthorized, `{"error":"bad key"}`)
		}))
		defer server.Close()

		_, err := newClient(t, server.URL).Recommend(t.Context(), req)

		require.ErrorIs(t, err, dispatch.ErrRecommenderUnreachable)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("should retry network errors", func(t *testing.T) {
		req := newRequest(t)
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := newClient(t, url).Recommend(t.Context(), req)

		require.ErrorIs(t, err, dispatch.ErrRecommenderUnreachable)
	})

	t.Run("should stop at the caller deadline", func(t *testing.T) {
		req := newRequest(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			reply(w, http.StatusOK, `{}`)
		}))
		defer server.Close()
		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := newClient(t, server.URL).Recommend(ctx, req)

		require.ErrorIs(t, err, dispatch.ErrRecommendationFailed)
		assert.Less(t, time.Since(start), time.Second)
	})

	malformed := []struct {
		name string
		body func(req dispatch.Request) string
	}{
		{"not json", func(dispatch.Request) string { return `<html>` }},
		{"missing courier", func(dispatch.Request) string {
			return `{"reasoning":"r","estimatedTime":"~5 min"}`
		}},
		{"unknown courier", func(dispatch.Request) string {
			return `{"suggestedCourierId":"` + kernel.NewID(kernel.KindCourier).String() + `","reasoning":"r","estimatedTime":"e"}`
		}},
		{"wrong id kind", func(req dispatch.Request) string {
			return `{"suggestedCourierId":"` + req.OrderID.String() + `","reasoning":"r","estimatedTime":"e"}`
		}},
		{"blank reasoning", func(req dispatch.Request) string {
			return `{"suggestedCourierId":"` + req.Candidates[0].CourierID.String() + `","reasoning":"  ","estimatedTime":"e"}`
		}},
		{"missing estimated time", func(req dispatch.Request) string {
			return `{"suggestedCourierId":"` + req.Candidates[0].CourierID.String() + `","reasoning":"r"}`
		}},
	}
	for _, tt := range malformed {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			req := newRequest(t)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reply(w, http.StatusOK, tt.body(req))
			}))
			defer server.Close()

			_, err := newClient(t, server.URL).Recommend(t.Context(), req)

			require.ErrorIs(t, err, dispatch.ErrRecommendationFailed)
			assert.NotErrorIs(t, err, dispatch.ErrRecommenderUnreachable)
		})
	}
}
