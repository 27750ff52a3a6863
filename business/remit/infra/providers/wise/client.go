package wise

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
	tracerName        = "wise"
	defaultBaseURL     = "https://api.wise.com"
	quoteEndpoint      = "/v3/quotes"
	defaultHTTPTimeout = 10 * time.Second
)

// Config holds the adapter's connection settings.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// client wraps the instrumented HTTP client with Wise's request/response
// shapes.
type client struct {
	http    httpclient.Client
	tracer  trace.Tracer
	breaker *circuitbreaker.CircuitBreaker[*quoteResponseBody]
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
		httpclient.WithProviderName("wise"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest, httpclient.TraceResponse),
		httpclient.WithHeaders(headers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create wise http client: %w", err)
	}

	breaker := circuitbreaker.New[*quoteResponseBody](circuitbreaker.DefaultConfig("wise"))

	return &client{http: httpClient, tracer: tracer, breaker: breaker}, nil
}

func (c *client) getQuote(ctx context.Context, body quoteRequestBody) (*quoteResponseBody, error) {
	ctx, span := c.tracer.Start(ctx, "wise.get_quote")
	defer span.End()

	result, err := c.breaker.Execute(func() (*quoteResponseBody, error) {
		var result quoteResponseBody
		resp, err := c.http.NewRequestWithOptions(
			httpclient.WithResponseErrorHandler(wiseErrorHandler),
		).
			SetBody(body).
			SetResult(&result).
			Post(ctx, quoteEndpoint)
		if err != nil {
			if apperror.IsAppError(err) {
				return nil, err
			}
			return nil, apperror.New(apperror.CodeProviderConnectionFailed,
				apperror.WithCause(err),
				apperror.WithContext("wise quote request failed"))
		}
		if resp.IsError() {
			return nil, apperror.New(apperror.CodeProviderAPIError,
				apperror.WithContext(fmt.Sprintf("wise returned HTTP %d: %s", resp.StatusCode, resp.String())))
		}
		return &result, nil
	})
	if err != nil {
		span.RecordError(err)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithCause(err), apperror.WithContext("wise circuit breaker open"))
		}
		return nil, err
	}

	return result, nil
}

func wiseErrorHandler(statusCode int, body []byte) error {
	if statusCode == 401 || statusCode == 403 {
		return apperror.New(apperror.CodeProviderAuthFailed, apperror.WithContext(string(body)))
	}
	if statusCode == 429 {
		return apperror.New(apperror.CodeProviderRateLimited, apperror.WithContext(string(body)))
	}
	if statusCode >= 400 {
		return apperror.New(apperror.CodeProviderAPIError, apperror.WithContext(string(body)))
	}
	return nil
}
