package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/infrastructure/http/middleware"
	"github.com/vendorops/insights/infrastructure/http/response"
	"github.com/vendorops/insights/infrastructure/http/validator"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

type InsightHandler struct {
	insightUseCase    inbound.InsightUseCase
	logger            logger.Logger
	defaultWindowDays int
}

func NewInsightHandler(insightUseCase inbound.InsightUseCase, log logger.Logger, defaultWindowDays int) *InsightHandler {
	return &InsightHandler{
		insightUseCase:    insightUseCase,
		logger:            log,
		defaultWindowDays: defaultWindowDays,
	}
}

// RegisterRoutes mounts the tenant scoped API. Writes additionally pass
// through the limiter when one is given.
func (h *InsightHandler) RegisterRoutes(router *mux.Router, auth *middleware.AuthMiddleware, limiter *middleware.RateLimitMiddleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.RequireTenant)

	write := func(fn http.HandlerFunc) http.Handler {
		if limiter == nil {
			return fn
		}
		return limiter.RateLimit(fn)
	}

	api.HandleFunc("/insights/pricing", h.ListPricingInsights).Methods(http.MethodGet)
	api.HandleFunc("/insights/inventory", h.ListInventoryInsights).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}/price-history", h.ListPriceHistory).Methods(http.MethodGet)
	api.Handle("/products/{id}/price", write(h.ApplyPrice)).Methods(http.MethodPost)
	api.Handle("/purchase-orders", write(h.CreatePurchaseOrder)).Methods(http.MethodPost)
	api.Handle("/competitor-prices/import", write(h.ImportCompetitorPrices)).Methods(http.MethodPost)
}

// ListPricingInsights returns surfaced pricing recommendations
func (h *InsightHandler) ListPricingInsights(w http.ResponseWriter, r *http.Request) {
	req, ok := h.listRequest(w, r)
	if !ok {
		return
	}

	recs, err := h.insightUseCase.ListPricingInsights(r.Context(), middleware.TenantID(r.Context()), req.WindowDays)
	if err != nil {
		h.fail(w, r, "list pricing insights", err)
		return
	}
	response.Success(w, http.StatusOK, "Pricing insights retrieved", recs)
}

// ListInventoryInsights returns surfaced inventory recommendations
func (h *InsightHandler) ListInventoryInsights(w http.ResponseWriter, r *http.Request) {
	req, ok := h.listRequest(w, r)
	if !ok {
		return
	}

	recs, err := h.insightUseCase.ListInventoryInsights(r.Context(), middleware.TenantID(r.Context()), req.WindowDays)
	if err != nil {
		h.fail(w, r, "list inventory insights", err)
		return
	}
	response.Success(w, http.StatusOK, "Inventory insights retrieved", recs)
}

func (h *InsightHandler) ApplyPrice(w http.ResponseWriter, r *http.Request) {
	var req inbound.ApplyPriceRequest
	if errs := validator.DecodeJSON(r, &req); errs != nil {
		response.ValidationFailed(w, errs)
		return
	}
	req.ProductID = mux.Vars(r)["id"]

	res, err := h.insightUseCase.ApplyPrice(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		h.fail(w, r, "apply price", err)
		return
	}
	response.Success(w, http.StatusOK, "Price applied", res)
}

func (h *InsightHandler) ListPriceHistory(w http.ResponseWriter, r *http.Request) {
	var req inbound.ListPriceHistoryRequest
	limit, err := queryInt(r, "limit")
	if err != nil {
		response.ValidationFailed(w, []validator.ValidationError{queryError("limit")})
		return
	}
	req.Limit = limit
	if errs := validator.Struct(r.Context(), &req); errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	entries, err := h.insightUseCase.ListPriceHistory(r.Context(), middleware.TenantID(r.Context()), mux.Vars(r)["id"], req.Limit)
	if err != nil {
		h.fail(w, r, "list price history", err)
		return
	}
	response.Success(w, http.StatusOK, "Price history retrieved", entries)
}

func (h *InsightHandler) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreatePurchaseOrderRequest
	if errs := validator.DecodeJSON(r, &req); errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	res, err := h.insightUseCase.CreatePurchaseOrder(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		h.fail(w, r, "create purchase order", err)
		return
	}
	response.Success(w, http.StatusCreated, "Purchase order drafted", res)
}

func (h *InsightHandler) ImportCompetitorPrices(w http.ResponseWriter, r *http.Request) {
	var req inbound.ImportCompetitorPricesRequest
	if errs := validator.DecodeJSON(r, &req); errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	res, err := h.insightUseCase.ImportCompetitorPrices(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		h.fail(w, r, "import competitor prices", err)
		return
	}
	response.Success(w, http.StatusOK, "Competitor prices imported", res)
}

// listRequest reads window_days, falling back to the configured default.
func (h *InsightHandler) listRequest(w http.ResponseWriter, r *http.Request) (inbound.ListInsightsRequest, bool) {
	req := inbound.ListInsightsRequest{WindowDays: h.defaultWindowDays}
	days, err := queryInt(r, "window_days")
	if err != nil {
		response.ValidationFailed(w, []validator.ValidationError{queryError("window_days")})
		return req, false
	}
	if days != 0 {
		req.WindowDays = days
	}
	if errs := validator.Struct(r.Context(), &req); errs != nil {
		response.ValidationFailed(w, errs)
		return req, false
	}
	return req, true
}

func (h *InsightHandler) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	h.logger.Warn(r.Context(), "Request failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	response.AppError(w, err)
}

// queryInt returns 0 for an absent parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryError(field string) validator.ValidationError {
	return validator.ValidationError{
		Code:    "ERR_INVALID_QUERY",
		Field:   field,
		Message: field + " must be an integer",
	}
}
