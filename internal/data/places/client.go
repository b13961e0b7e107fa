package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"google-reviews/pkg/metrics"

	"go.uber.org/zap"
)

const detailsPath = "/maps/api/place/details/json"

// ErrTransport means no HTTP reply was received
var ErrTransport = errors.New("places api unreachable")

// Response is a raw upstream reply. Body is kept verbatim so it can be
// cached exactly as received.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client interface {
	FetchDetails(ctx context.Context, placeID, apiKey string) (*Response, error)
}

type client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) Client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "places")),
	}
}

// DetailsURL builds the Places Details request for a place, newest reviews first
func DetailsURL(baseURL, placeID, apiKey string) string {
	query := url.Values{}
	query.Set("placeid", placeID)
	query.Set("key", apiKey)
	query.Set("reviews_sort", "newest")

	return baseURL + detailsPath + "?" + query.Encode()
}

// FetchDetails performs a single GET. Only transport failures are returned
// as errors, the status code is left to the caller.
func (c *client) FetchDetails(ctx context.Context, placeID, apiKey string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DetailsURL(c.baseURL, placeID, apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.PlacesRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PlacesRequestsTotal.WithLabelValues("transport_error").Inc()
		err = withoutURL(err)
		c.log.Error("Places request failed",
			zap.Error(err),
			zap.String("place_id", placeID),
		)
		return nil, fmt.Errorf("%w: request place details %s: %w", ErrTransport, placeID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.PlacesRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("%w: read place details %s: %w", ErrTransport, placeID, err)
	}

	metrics.PlacesRequestsTotal.WithLabelValues(fmt.Sprintf("%dxx", resp.StatusCode/100)).Inc()
	c.log.Debug("Places request completed",
		zap.String("place_id", placeID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// withoutURL drops the request URL from client errors, it carries the API key
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s places api: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
