package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/internal/service"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
	"github.com/noah-isme/tutor-match-api/pkg/response"
)

type availabilityService interface {
	ListSlots(ctx context.Context, tutorID string) ([]models.AvailabilitySlot, error)
	CreateSlot(ctx context.Context, tutorID string, req dto.AvailabilitySlotRequest) (*models.AvailabilitySlot, error)
	UpdateSlot(ctx context.Context, tutorID, slotID string, req dto.AvailabilitySlotRequest) (*models.AvailabilitySlot, error)
	AdjustBookingCount(ctx context.Context, slotID string, delta int) (*models.AvailabilitySlot, error)
}

// AvailabilityHandler exposes tutor availability slot endpoints.
type AvailabilityHandler struct {
	service availabilityService
	metrics *service.MetricsService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(svc availabilityService, metrics *service.MetricsService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc, metrics: metrics}
}

// ListSlots godoc
// @Summary List a tutor's active availability slots
// @Tags Availability
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} response.Envelope
// @Router /tutors/{id}/availability-slots [get]
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	slots, err := h.service.ListSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SlotResponses(slots), nil)
}

// CreateSlot godoc
// @Summary Declare a new availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Tutor ID"
// @Param payload body dto.AvailabilitySlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /tutors/{id}/availability-slots [post]
func (h *AvailabilityHandler) CreateSlot(c *gin.Context) {
	var req dto.AvailabilitySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.CreateSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SlotResponse(*slot))
}

// UpdateSlot godoc
// @Summary Edit an availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Tutor ID"
// @Param slotId path string true "Slot ID"
// @Param payload body dto.AvailabilitySlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /tutors/{id}/availability-slots/{slotId} [put]
func (h *AvailabilityHandler) UpdateSlot(c *gin.Context) {
	var req dto.AvailabilitySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.UpdateSlot(c.Request.Context(), c.Param("id"), c.Param("slotId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SlotResponse(*slot), nil)
}

// AdjustBooking godoc
// @Summary Adjust a slot's booking counter
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body dto.AdjustBookingRequest true "Booking delta"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability-slots/{id}/bookings [post]
func (h *AvailabilityHandler) AdjustBooking(c *gin.Context) {
	var req dto.AdjustBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.AdjustBookingCount(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		switch appErrors.FromError(err).Code {
		case appErrors.ErrCapacityExceeded.Code:
			h.metrics.RecordCapacityExceeded()
		case appErrors.ErrConcurrencyConflict.Code:
			h.metrics.RecordVersionConflict()
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SlotResponse(*slot), nil)
}
