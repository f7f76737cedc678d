package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wakil120/ShopReview/internal/repository"
	"github.com/wakil120/ShopReview/internal/service"
	apperrors "github.com/wakil120/ShopReview/pkg/errors"
	"github.com/wakil120/ShopReview/pkg/httputil"
	"github.com/wakil120/ShopReview/pkg/validator"
)

// ShopHandler handles HTTP requests for shop endpoints.
type ShopHandler struct {
	service *service.ShopService
	logger  *slog.Logger
}

// NewShopHandler creates a new shop HTTP handler.
func NewShopHandler(svc *service.ShopService, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateShopRequest is the JSON request body for registering a shop.
type CreateShopRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"required,min=1,max=100"`
	Location string `json:"location" validate:"required,min=1,max=200"`
}

// --- Handlers ---

// ListShops handles GET /api/v1/shops
// @Summary List shops
// @Description Returns shops newest first, optionally filtered by category and location
// @Tags shops
// @Produce json
// @Param category query string false "Exact category, case-insensitive"
// @Param location query string false "Exact location, case-insensitive"
// @Success 200 {array} domain.Shop
// @Router /api/v1/shops [get]
func (h *ShopHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	var filter repository.ShopFilter

	if v := r.URL.Query().Get("category"); v != "" {
		filter.Category = &v
	}
	if v := r.URL.Query().Get("location"); v != "" {
		filter.Location = &v
	}

	shops, err := h.service.ListShops(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, shops)
}

// SearchShops handles GET /api/v1/shops/search
// @Summary Search shops by name
// @Description Splits the query on whitespace; shops matching any term are returned best rated first
// @Tags shops
// @Produce json
// @Param name query string true "Search query"
// @Success 200 {array} domain.Shop
// @Failure 400 {object} httputil.ErrorBody
// @Router /api/v1/shops/search [get]
func (h *ShopHandler) SearchShops(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")

	shops, err := h.service.SearchShops(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, shops)
}

// CompareShops handles GET /api/v1/shops/compare
// @Summary Compare two shops by ID
// @Tags shops
// @Produce json
// @Param shop1 query string true "First shop ID"
// @Param shop2 query string true "Second shop ID"
// @Success 200 {object} service.ComparisonResult
// @Failure 400 {object} httputil.ErrorBody
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/shops/compare [get]
func (h *ShopHandler) CompareShops(w http.ResponseWriter, r *http.Request) {
	id1 := r.URL.Query().Get("shop1")
	id2 := r.URL.Query().Get("shop2")
	if id1 == "" || id2 == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("shop1 and shop2 query parameters are required"), h.logger)
		return
	}

	result, err := h.service.CompareShopsByID(r.Context(), id1, id2)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// CompareShopsByName handles GET /api/v1/shops/compare-by-name
// @Summary Compare two shops by name
// @Description Resolves each name case-insensitively, exact match first then substring
// @Tags shops
// @Produce json
// @Param shop1 query string true "First shop name"
// @Param shop2 query string true "Second shop name"
// @Success 200 {object} service.ComparisonResult
// @Failure 400 {object} httputil.ErrorBody
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/shops/compare-by-name [get]
func (h *ShopHandler) CompareShopsByName(w http.ResponseWriter, r *http.Request) {
	name1 := r.URL.Query().Get("shop1")
	name2 := r.URL.Query().Get("shop2")
	if name1 == "" || name2 == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("shop1 and shop2 query parameters are required"), h.logger)
		return
	}

	result, err := h.service.CompareShopsByName(r.Context(), name1, name2)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetShop handles GET /api/v1/shops/{id}
// @Summary Get shop by ID
// @Tags shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} domain.Shop
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/shops/{id} [get]
func (h *ShopHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	shop, err := h.service.GetShop(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, shop)
}

// CreateShop handles POST /api/v1/shops
// @Summary Register a shop
// @Tags shops
// @Accept json
// @Produce json
// @Param request body CreateShopRequest true "Shop to register"
// @Success 201 {object} domain.Shop
// @Failure 400 {object} httputil.ErrorBody
// @Router /api/v1/shops [post]
func (h *ShopHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	shop, err := h.service.CreateShop(r.Context(), &service.CreateShopInput{
		Name:     req.Name,
		Category: req.Category,
		Location: req.Location,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, shop)
}
