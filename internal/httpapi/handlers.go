package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/internal/logger"
)

type handlers struct {
	coordinator              *app.Coordinator
	registry                 app.Registry
	logger                   logger.LoggerInterface
	defaultPerProviderTimeoutMS int
}

// getQuotes implements GET /api/quotes/.
func (h *handlers) getQuotes(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuoteRequest(r)
	if err != nil {
		writeInvalidParameter(w, err.Error())
		return
	}
	if req.Options.PerProviderTimeoutMS == nil && h.defaultPerProviderTimeoutMS > 0 {
		timeout := h.defaultPerProviderTimeoutMS
		req.Options.PerProviderTimeoutMS = &timeout
	}

	result := h.coordinator.GetAllQuotes(r.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// listProviders implements GET /api/providers/.
func (h *handlers) listProviders(w http.ResponseWriter, r *http.Request) {
	type providerSummary struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	}

	out := make([]providerSummary, 0, len(h.registry.ListIDs()))
	for _, id := range h.registry.ListIDs() {
		adapter, err := h.registry.Build(id)
		if err != nil {
			h.logger.Warn(r.Context(), "failed to build adapter for listing", "provider", id, "error", err)
			continue
		}
		out = append(out, providerSummary{ID: adapter.ID(), DisplayName: adapter.DisplayName()})
	}
	writeJSON(w, http.StatusOK, out)
}

// getProvider implements GET /api/providers/{id}/.
func (h *handlers) getProvider(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found := false
	for _, known := range h.registry.ListIDs() {
		if known == id {
			found = true
			break
		}
	}
	if !found {
		writeNotFound(w, "unknown provider "+id)
		return
	}

	adapter, err := h.registry.Build(id)
	if err != nil {
		writeInternal(w, err.Error())
		return
	}

	type providerDetail struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Enabled     bool   `json:"enabled"`
	}
	active := h.registry.ActiveIDs(nil, nil)
	enabled := false
	for _, a := range active {
		if a == id {
			enabled = true
			break
		}
	}
	writeJSON(w, http.StatusOK, providerDetail{ID: adapter.ID(), DisplayName: adapter.DisplayName(), Enabled: enabled})
}

func parseQuoteRequest(r *http.Request) (domain.QuoteRequest, error) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		return domain.QuoteRequest{}, errInvalidField("amount")
	}

	req := domain.QuoteRequest{
		SourceCountry:  strings.ToUpper(q.Get("source_country")),
		DestCountry:    strings.ToUpper(q.Get("dest_country")),
		SourceCurrency: strings.ToUpper(q.Get("source_currency")),
		DestCurrency:   strings.ToUpper(q.Get("dest_currency")),
		Amount:         amount,
		PaymentMethod:  domain.PaymentMethod(q.Get("payment_method")),
		DeliveryMethod: domain.DeliveryMethod(q.Get("delivery_method")),
	}

	opts := domain.Options{}
	opts.ForceRefresh = q.Get("force_refresh") == "true"
	if sortBy := q.Get("sort_by"); sortBy != "" {
		opts.SortBy = domain.SortBy(sortBy)
	}
	if maxFee := q.Get("max_fee"); maxFee != "" {
		v, err := decimal.NewFromString(maxFee)
		if err != nil {
			return domain.QuoteRequest{}, errInvalidField("max_fee")
		}
		opts.MaxFee = &v
	}
	if maxDelivery := q.Get("max_delivery_time_minutes"); maxDelivery != "" {
		v, err := strconv.Atoi(maxDelivery)
		if err != nil {
			return domain.QuoteRequest{}, errInvalidField("max_delivery_time_minutes")
		}
		opts.MaxDeliveryTimeMinutes = &v
	}
	if include := q.Get("include_providers"); include != "" {
		opts.IncludeProviders = strings.Split(include, ",")
	}
	if exclude := q.Get("exclude_providers"); exclude != "" {
		opts.ExcludeProviders = strings.Split(exclude, ",")
	}
	if timeout := q.Get("per_provider_timeout_ms"); timeout != "" {
		v, err := strconv.Atoi(timeout)
		if err != nil {
			return domain.QuoteRequest{}, errInvalidField("per_provider_timeout_ms")
		}
		opts.PerProviderTimeoutMS = &v
	}
	if workers := q.Get("max_workers"); workers != "" {
		v, err := strconv.Atoi(workers)
		if err != nil {
			return domain.QuoteRequest{}, errInvalidField("max_workers")
		}
		opts.MaxWorkers = &v
	}
	opts.IncludeRaw = q.Get("include_raw") == "true"
	req.Options = opts

	return req, nil
}

func errInvalidField(field string) error {
	return &fieldError{field: field}
}

type fieldError struct{ field string }

func (e *fieldError) Error() string { return "invalid or missing field: " + e.field }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeInvalidParameter(w http.ResponseWriter, message string) {
	body := errorBody{Success: false}
	body.Error.Code = string(domain.ErrorKindInvalidParameter)
	body.Error.Message = message
	writeJSON(w, http.StatusBadRequest, body)
}

func writeNotFound(w http.ResponseWriter, message string) {
	body := errorBody{Success: false}
	body.Error.Code = "NotFound"
	body.Error.Message = message
	writeJSON(w, http.StatusNotFound, body)
}

func writeInternal(w http.ResponseWriter, message string) {
	body := errorBody{Success: false}
	body.Error.Code = string(domain.ErrorKindInternal)
	body.Error.Message = message
	writeJSON(w, http.StatusInternalServerError, body)
}

func writeRateLimited(w http.ResponseWriter) {
	body := errorBody{Success: false}
	body.Error.Code = string(domain.ErrorKindRateLimit)
	body.Error.Message = "too many requests"
	writeJSON(w, http.StatusTooManyRequests, body)
}
