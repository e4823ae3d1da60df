package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/internal/service"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
	"github.com/noah-isme/tutor-match-api/pkg/response"
)

type matchingService interface {
	FindAvailableTutors(ctx context.Context, contractID string, opts dto.MatchOptions) ([]models.TutorCandidate, error)
	PreviewAvailableTutors(ctx context.Context, req dto.PreviewMatchRequest, opts dto.MatchOptions) ([]models.TutorCandidate, error)
}

// MatchingHandler exposes the tutor matching endpoints.
type MatchingHandler struct {
	service matchingService
	metrics *service.MetricsService
}

// NewMatchingHandler constructs handler.
func NewMatchingHandler(svc matchingService, metrics *service.MetricsService) *MatchingHandler {
	return &MatchingHandler{service: svc, metrics: metrics}
}

// FindAvailableTutors godoc
// @Summary List tutors able to take a contract
// @Tags Matching
// @Produce json
// @Param id path string true "Contract ID"
// @Param sortByRating query bool false "Sort by average rating descending"
// @Param sortByDistance query bool false "Sort by center distance ascending"
// @Success 200 {object} response.Envelope
// @Router /contracts/{id}/available-tutors [get]
func (h *MatchingHandler) FindAvailableTutors(c *gin.Context) {
	opts := matchOptions(c)

	start := time.Now()
	candidates, err := h.service.FindAvailableTutors(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveMatchRun(time.Since(start), len(candidates))

	response.JSON(c, http.StatusOK, candidates, nil, map[string]interface{}{"total": len(candidates)})
}

// Preview godoc
// @Summary Preview matching for an unsaved contract schedule
// @Tags Matching
// @Accept json
// @Produce json
// @Param payload body dto.PreviewMatchRequest true "Candidate schedule"
// @Param sortByRating query bool false "Sort by average rating descending"
// @Param sortByDistance query bool false "Sort by center distance ascending"
// @Success 200 {object} response.Envelope
// @Router /matching/preview [post]
func (h *MatchingHandler) Preview(c *gin.Context) {
	var req dto.PreviewMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	opts := matchOptions(c)

	start := time.Now()
	candidates, err := h.service.PreviewAvailableTutors(c.Request.Context(), req, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveMatchRun(time.Since(start), len(candidates))

	response.JSON(c, http.StatusOK, candidates, nil, map[string]interface{}{"total": len(candidates)})
}

func matchOptions(c *gin.Context) dto.MatchOptions {
	var opts dto.MatchOptions
	if v, err := strconv.ParseBool(c.DefaultQuery("sortByRating", "false")); err == nil {
		opts.SortByRating = v
	}
	if v, err := strconv.ParseBool(c.DefaultQuery("sortByDistance", "false")); err == nil {
		opts.SortByDistance = v
	}
	return opts
}
