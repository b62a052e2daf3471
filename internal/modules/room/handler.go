package room

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"guesthouse/internal/domain"
	"guesthouse/internal/middleware"
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
		public.GET("/rooms/:id", h.Get)
		public.GET("/houses/:id/rooms/search/dates", h.SearchByDates)
		public.GET("/houses/:id/rooms/search/type", h.SearchByType)
		public.GET("/houses/:id/rooms/search/price", h.SearchByPrice)
	}

	if protected != nil {
		protected.POST("/rooms", h.Add)
		protected.PUT("/rooms/:id", h.Update)
		protected.DELETE("/rooms/:id", h.Delete)
	}
}

func (h *Handler) Add(c *gin.Context) {
	var req AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.svc.AddRoom(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, AddRoomResponse{ID: id})
}

func (h *Handler) Get(c *gin.Context) {
	room, err := h.svc.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	room, err := h.svc.UpdateRoom(c.Request.Context(), middleware.Principal(c), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Delete(c *gin.Context) {
	msg, err := h.svc.DeleteRoom(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, MessageResponse{Message: msg})
}

// SearchByDates expects start and end as RFC3339 timestamps.
func (h *Handler) SearchByDates(c *gin.Context) {
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "start and end must be RFC3339 timestamps")
		return
	}

	stay := domain.Interval{Start: start.UTC(), End: end.UTC()}
	rooms, err := h.svc.SearchAvailableRoomsByDateRange(c.Request.Context(), c.Param("id"), stay)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) SearchByType(c *gin.Context) {
	roomType := c.Query("type")
	if roomType == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "type is required")
		return
	}

	rooms, err := h.svc.SearchAvailableRoomsByType(c.Request.Context(), c.Param("id"), domain.RoomType(roomType))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) SearchByPrice(c *gin.Context) {
	rooms, err := h.svc.SearchAvailableRoomsByPriceRange(c.Request.Context(), c.Param("id"), c.Query("min"), c.Query("max"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}
