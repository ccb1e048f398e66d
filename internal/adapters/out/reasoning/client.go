// Package reasoning is the HTTP client of the remote dispatch reasoning
// service. It implements ports.Recommender and is meant to be the primary of
// services.FallbackRecommender.
package reasoning

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"

	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/domain/model/kernel"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultInitialBackoff is the wait before the first retry.
	DefaultInitialBackoff = 200 * time.Millisecond

	maxErrorBody = 1 << 10
)

var ErrURLIsRequired = errors.New("reasoning service url is required")

// Options configures a Client. Only URL is required.
type Options struct {
	URL            string
	APIKey         string
	HTTPClient     *http.Client
	MaxRetries     uint64
	InitialBackoff time.Duration
}

// Client asks the reasoning service which courier should take an order.
// It is safe for concurrent use.
type Client struct {
	url            string
	apiKey         string
	session        *http.Client
	maxRetries     uint64
	initialBackoff time.Duration
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, ErrURLIsRequired
	}

	session := opts.HTTPClient
	if session == nil {
		session = &http.Client{}
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	initialBackoff := opts.InitialBackoff
	if initialBackoff <= 0 {
		initialBackoff = DefaultInitialBackoff
	}

	return &Client{
		url:            opts.URL,
		apiKey:         opts.APIKey,
		session:        session,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
	}, nil
}

// Recommend implements ports.Recommender. The suggested courier must be one of
// the request's candidates and every response field must be present, otherwise
// the error wraps dispatch.ErrRecommendationFailed. The deadline of ctx bounds
// all attempts together.
func (c *Client) Recommend(ctx context.Context, req dispatch.Request) (dispatch.Recommendation, error) {
	body, err := jsoniter.ConfigFastest.Marshal(toRequestDTO(req))
	if err != nil {
		return dispatch.Recommendation{}, fmt.Errorf("%w: encode request: %w", dispatch.ErrRecommendationFailed, err)
	}

	raw, err := c.postWithRetry(ctx, body)
	if err != nil {
		return dispatch.Recommendation{}, fmt.Errorf("%w: %w", dispatch.ErrRecommenderUnreachable, err)
	}

	var resp responseDTO
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &resp); err != nil {
		return dispatch.Recommendation{}, fmt.Errorf("%w: decode response: %w", dispatch.ErrRecommendationFailed, err)
	}

	courierID, err := kernel.ParseID(kernel.KindCourier, resp.SuggestedCourierID)
	if err != nil {
		return dispatch.Recommendation{}, fmt.Errorf("%w: suggested courier: %w", dispatch.ErrRecommendationFailed, err)
	}

	return req.Accept(
		courierID,
		strings.TrimSpace(resp.Reasoning),
		strings.TrimSpace(resp.EstimatedTime),
		dispatch.SourceReasoningService,
	)
}

// postWithRetry retries network errors, 429 and 5xx responses with
// exponential backoff. Other failures are permanent.
func (c *Client) postWithRetry(ctx context.Context, body []byte) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialBackoff
	policy.MaxElapsedTime = 0

	return backoff.RetryWithData(func() ([]byte, error) {
		raw, err := c.post(ctx, body)
		if err == nil {
			return raw, nil
		}
		if ctx.Err() != nil || !isTransient(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return raw, nil
}

func isTransient(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code == http.StatusTooManyRequests || he.Code >= http.StatusInternalServerError
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
