package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reserve-portal/internal/domain/reservation"
	reqdto "reserve-portal/internal/handler/dto/request"
	resdto "reserve-portal/internal/handler/dto/response"
	"reserve-portal/internal/handler/httperr"
	"reserve-portal/internal/usecase/commands"
	"reserve-portal/internal/usecase/queries"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Submit a reservation; shared realtime items are acknowledged pending, everything else settles inline
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid request format", nil)
		return
	}

	view, err := h.reservationCommands.Submit(c.Request.Context(), req.ToInput())
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

func (h *ReservationHandler) writeSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrItemNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "ITEM_NOT_FOUND", "Reservation item not found", nil)
	case errors.Is(err, commands.ErrInvalidWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_WINDOW", "Invalid reservation window", nil)
	case errors.Is(err, reservation.ErrWindowOutOfRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "WINDOW_OUT_OF_RANGE", "Window is outside the reservable period", nil)
	case errors.Is(err, reservation.ErrPeriodTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "PERIOD_TOO_LONG", "Window exceeds the maximum booking span", nil)
	case errors.Is(err, reservation.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "SLOT_UNAVAILABLE", "The slot is already reserved", nil)
	case errors.Is(err, reservation.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, "CAPACITY_EXCEEDED", "Not enough capacity for the requested window", nil)
	case errors.Is(err, reservation.ErrExclusiveQuantity):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "EXCLUSIVE_QUANTITY", "Exclusive items admit a single unit per reservation", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "VALIDATION_FAILED", "Reservation validation failed", nil)
	case errors.Is(err, commands.ErrEventPublishFailed):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "EVENT_PUBLISH_FAILED", "Reservation could not be submitted, please retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
	}
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid reservation ID format", nil)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "RESERVATION_NOT_FOUND", "Reservation not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Tags reservations
// @Produce json
// @Param requester_id query string true "Requester ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	requesterID := c.Query("requester_id")
	if requesterID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("requester_id missing"), "BAD_REQUEST", "requester_id is required", nil)
		return
	}

	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	items, err := h.reservationQueries.ListByRequester(c.Request.Context(), requesterID, limit, offset)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i, it := range items {
		response[i] = resdto.FromReservationListItem(it)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Cancel reservation
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	h.runTransition(c, h.reservationCommands.Cancel)
}

// @Summary Close reservation
// @Description Administrative closure of an approved reservation
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/close [post]
func (h *ReservationHandler) CloseReservation(c *gin.Context) {
	h.runTransition(c, h.reservationCommands.Close)
}

func (h *ReservationHandler) runTransition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid reservation ID format", nil)
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "RESERVATION_NOT_FOUND", "Reservation not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "INVALID_TRANSITION", "Reservation is not in a state that allows this action", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
