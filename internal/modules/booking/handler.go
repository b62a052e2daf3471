package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/reservations/:id", h.Get)
		public.GET("/rooms/:id/availability", h.CheckAvailability)
		public.GET("/rooms/:id/reservations", h.ListByRoom)
		public.GET("/guests/:id/reservations", h.ListByGuest)
	}

	if protected != nil {
		protected.POST("/reservations", h.Create)
		protected.PUT("/reservations/:id", h.Update)
		protected.DELETE("/reservations/:id", h.Delete)
		protected.POST("/reservations/:id/checkout", h.Checkout)
	}
}

// Create books a room. 409 when the stay overlaps another reservation.
func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Checkout frees the room and records the payment. An unknown reservation
// still carries the zero-amount payment response in the error details.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.svc.CheckOutAndPay(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && resp != nil {
			response.ErrorWithDetails(c, http.StatusNotFound, "NOT_FOUND", resp.Msg, resp)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CheckAvailability expects check_in and check_out as RFC3339 timestamps.
func (h *Handler) CheckAvailability(c *gin.Context) {
	checkIn, err1 := time.Parse(time.RFC3339, c.Query("check_in"))
	checkOut, err2 := time.Parse(time.RFC3339, c.Query("check_out"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "check_in and check_out must be RFC3339 timestamps")
		return
	}

	stay := domain.Interval{Start: checkIn.UTC(), End: checkOut.UTC()}
	resp, err := h.svc.CheckRoomAvailability(c.Request.Context(), c.Param("id"), stay)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) ListByRoom(c *gin.Context) {
	items, err := h.svc.ListByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListByGuest(c *gin.Context) {
	items, err := h.svc.ListByGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
