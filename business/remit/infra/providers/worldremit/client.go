package worldremit

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
	tracerName         = "worldremit"
	defaultBaseURL     = "https://api.worldremit.com"
	pricingEndpoint    = "/v1/pricing"
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
	breaker *circuitbreaker.CircuitBreaker[*pricingResponseBody]
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
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}

	httpClient, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("worldremit"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest, httpclient.TraceResponse),
		httpclient.WithHeaders(headers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worldremit http client: %w", err)
	}

	breaker := circuitbreaker.New[*pricingResponseBody](circuitbreaker.DefaultConfig("worldremit"))

	return &client{http: httpClient, tracer: tracer, breaker: breaker}, nil
}

func (c *client) getPricing(ctx context.Context, sourceCountry, destCountry, sourceCurrency, destCurrency string) (*pricingResponseBody, error) {
	ctx, span := c.tracer.Start(ctx, "worldremit.get_pricing")
	defer span.End()

	result, err := c.breaker.Execute(func() (*pricingResponseBody, error) {
		var result pricingResponseBody
		resp, err := c.http.NewRequestWithOptions(
			httpclient.WithResponseErrorHandler(worldremitErrorHandler),
		).
			SetQueryParam("source_country", sourceCountry).
			SetQueryParam("target_country", destCountry).
			SetQueryParam("source_currency", sourceCurrency).
			SetQueryParam("target_currency", destCurrency).
			SetResult(&result).
			Get(ctx, pricingEndpoint)
		if err != nil {
			if apperror.IsAppError(err) {
				return nil, err
			}
			return nil, apperror.New(apperror.CodeProviderConnectionFailed,
				apperror.WithCause(err),
				apperror.WithContext("worldremit pricing request failed"))
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodeProviderAPIError,
				apperror.WithContext(fmt.Sprintf("worldremit returned HTTP %d: %s", resp.StatusCode, resp.String())))
		}
		return &result, nil
	})
	if err != nil {
		span.RecordError(err)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithCause(err), apperror.WithContext("worldremit circuit breaker open"))
		}
		return nil, err
	}

	return result, nil
}

func worldremitErrorHandler(statusCode int, body []byte) error {
	switch {
	case statusCode == 401 || statusCode == 403:
		return apperror.New(apperror.CodeProviderAuthFailed, apperror.WithContext(string(body)))
	case statusCode == 429:
		return apperror.New(apperror.CodeProviderRateLimited, apperror.WithContext(string(body)))
	case statusCode >= 400:
		return apperror.New(apperror.CodeProviderAPIError, apperror.WithContext(string(body)))
	}
	return nil
}
