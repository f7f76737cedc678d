package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wakil120/ShopReview/internal/domain"
	"github.com/wakil120/ShopReview/internal/service"
	"github.com/wakil120/ShopReview/pkg/httputil"
	"github.com/wakil120/ShopReview/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddReviewRequest is the JSON request body for submitting a review.
type AddReviewRequest struct {
	ShopID   string `json:"shopId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required,min=1,max=2000"`
	Reviewer string `json:"reviewer" validate:"required,min=1,max=100"`
}

// AddReviewResponse pairs the stored review with the shop carrying its
// refreshed rating aggregate.
type AddReviewResponse struct {
	Review      *domain.Review `json:"review"`
	UpdatedShop *domain.Shop   `json:"updatedShop"`
}

// DeleteReviewResponse confirms the deletion and carries the shop with
// its refreshed rating aggregate.
type DeleteReviewResponse struct {
	Message     string       `json:"message"`
	UpdatedShop *domain.Shop `json:"updatedShop"`
}

// --- Handlers ---

// ListShopReviews handles GET /api/v1/reviews/{shopId}
// @Summary List reviews for a shop
// @Tags reviews
// @Produce json
// @Param shopId path string true "Shop ID"
// @Success 200 {array} domain.Review
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/reviews/{shopId} [get]
func (h *ReviewHandler) ListShopReviews(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")

	reviews, err := h.service.ListShopReviews(r.Context(), shopID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// GetReview handles GET /api/v1/reviews/single/{id}
// @Summary Get a single review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} domain.Review
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/reviews/single/{id} [get]
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	review, err := h.service.GetReview(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, review)
}

// AddReview handles POST /api/v1/reviews
// @Summary Submit a review
// @Description Stores the review and synchronously recomputes the shop's rating aggregate
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body AddReviewRequest true "Review to submit"
// @Success 201 {object} AddReviewResponse
// @Failure 400 {object} httputil.ErrorBody
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, updatedShop, err := h.service.AddReview(r.Context(), &service.AddReviewInput{
		ShopID:   req.ShopID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Reviewer: req.Reviewer,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, AddReviewResponse{
		Review:      review,
		UpdatedShop: updatedShop,
	})
}

// DeleteReview handles DELETE /api/v1/reviews/{id}
// @Summary Delete a review
// @Description Removes the review and synchronously recomputes the shop's rating aggregate
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} DeleteReviewResponse
// @Failure 404 {object} httputil.ErrorBody
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	updatedShop, err := h.service.DeleteReview(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DeleteReviewResponse{
		Message:     "review deleted",
		UpdatedShop: updatedShop,
	})
}
