package instarem

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/remit-aggregator/internal/apperror"
	"github.com/fd1az/remit-aggregator/internal/circuitbreaker"
	"github.com/fd1az/remit-aggregator/internal/httpclient"
)

const (
	tracerName         = "instarem"
	defaultBaseURL     = "https://api.instarem.com"
	rateEndpoint       = "/v1/rates"
	defaultHTTPTimeout = 10 * time.Second
)

// Config holds the adapter's connection settings.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

type client struct {
	http    httpclient.Client
	tracer  trace.Tracer
	breaker *circuitbreaker.CircuitBreaker[*rateResponseBody]
}

func newClient(cfg Config) (*client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultHTTPTimeout
	}

	tracer := otel.Tracer(tracerName)

	headers := map[string]string{"Accept": "application/json"}
	if cfg.APIKey != "" {
		headers["X-Api-Key"] = cfg.APIKey
	}

	httpClient, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("instarem"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest, httpclient.TraceResponse),
		httpclient.WithHeaders(headers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create instarem http client: %w", err)
	}

	breaker := circuitbreaker.New[*rateResponseBody](circuitbreaker.DefaultConfig("instarem"))

	return &client{http: httpClient, tracer: tracer, breaker: breaker}, nil
}

func (c *client) getRate(ctx context.Context, body rateRequestBody) (*rateResponseBody, error) {
	ctx, span := c.tracer.Start(ctx, "instarem.get_rate")
	defer span.End()

	result, err := c.breaker.Execute(func() (*rateResponseBody, error) {
		var result rateResponseBody
		resp, err := c.http.NewRequestWithOptions(
			httpclient.WithResponseErrorHandler(instaremErrorHandler),
		).
			SetBody(body).
			SetResult(&result).
			Post(ctx, rateEndpoint)
		if err != nil {
			if apperror.IsAppError(err) {
				return nil, err
			}
			return nil, apperror.New(apperror.CodeProviderConnectionFailed,
				apperror.WithCause(err),
				apperror.WithContext("instarem rate request failed"))
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodeProviderAPIError,
				apperror.WithContext(fmt.Sprintf("instarem returned HTTP %d: %s", resp.StatusCode, resp.String())))
		}
		return &result, nil
	})
	if err != nil {
		span.RecordError(err)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithCause(err), apperror.WithContext("instarem circuit breaker open"))
		}
		return nil, err
	}

	return result, nil
}

func instaremErrorHandler(statusCode int, body []byte) error {
	switch {
	case statusCode == 401 || statusCode == 403:
		return apperror.New(apperror.CodeProviderAuthFailed, apperror.WithContext(string(body)))
	case statusCode == 409:
		return apperror.New(apperror.CodeUnsupportedCorridor, apperror.WithContext(string(body)))
	case statusCode == 429:
		return apperror.New(apperror.CodeProviderRateLimited, apperror.WithContext(string(body)))
	case statusCode >= 400:
		return apperror.New(apperror.CodeProviderAPIError, apperror.WithContext(string(body)))
	}
	return nil
}
