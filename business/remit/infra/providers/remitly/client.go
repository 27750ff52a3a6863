package remitly

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
	tracerName         = "remitly"
	defaultBaseURL     = "https://api.remitly.com"
	estimateEndpoint   = "/v2/estimates"
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
	breaker *circuitbreaker.CircuitBreaker[*estimateResponseBody]
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
	if cfg.APISecret != "" {
		headers["X-Api-Secret"] = cfg.APISecret
	}

	httpClient, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("remitly"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest, httpclient.TraceResponse),
		httpclient.WithHeaders(headers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remitly http client: %w", err)
	}

	breaker := circuitbreaker.New[*estimateResponseBody](circuitbreaker.DefaultConfig("remitly"))

	return &client{http: httpClient, tracer: tracer, breaker: breaker}, nil
}

func (c *client) getEstimate(ctx context.Context, body estimateRequestBody) (*estimateResponseBody, error) {
	ctx, span := c.tracer.Start(ctx, "remitly.get_estimate")
	defer span.End()

	result, err := c.breaker.Execute(func() (*estimateResponseBody, error) {
		var result estimateResponseBody
		resp, err := c.http.NewRequestWithOptions(
			httpclient.WithResponseErrorHandler(remitlyErrorHandler),
		).
			SetBody(body).
			SetResult(&result).
			Post(ctx, estimateEndpoint)
		if err != nil {
			if apperror.IsAppError(err) {
				return nil, err
			}
			return nil, apperror.New(apperror.CodeProviderConnectionFailed,
				apperror.WithCause(err),
				apperror.WithContext("remitly estimate request failed"))
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodeProviderAPIError,
				apperror.WithContext(fmt.Sprintf("remitly returned HTTP %d: %s", resp.StatusCode, resp.String())))
		}
		return &result, nil
	})
	if err != nil {
		span.RecordError(err)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithCause(err), apperror.WithContext("remitly circuit breaker open"))
		}
		return nil, err
	}

	return result, nil
}

func remitlyErrorHandler(statusCode int, body []byte) error {
	switch {
	case statusCode == 401 || statusCode == 403:
		return apperror.New(apperror.CodeProviderAuthFailed, apperror.WithContext(string(body)))
	case statusCode == 404:
		return apperror.New(apperror.CodeUnsupportedCorridor, apperror.WithContext(string(body)))
	case statusCode == 429:
		return apperror.New(apperror.CodeProviderRateLimited, apperror.WithContext(string(body)))
	case statusCode >= 400:
		return apperror.New(apperror.CodeProviderAPIError, apperror.WithContext(string(body)))
	}
	return nil
}
