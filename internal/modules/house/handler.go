package house

import (
	"net/http"

	"github.com/gin-gonic/gin"

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
		public.GET("/houses/:id", h.Get)
		public.GET("/houses/:id/rooms/available", h.AvailableRooms)
	}

	if protected != nil {
		protected.POST("/houses", h.Init)
		protected.PUT("/houses/:id", h.Update)
	}
}

// Init creates the house. 409 ALREADY_INITIALIZED on the second call.
func (h *Handler) Init(c *gin.Context) {
	var req InitHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.svc.InitHouse(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, InitHouseResponse{ID: id})
}

func (h *Handler) Get(c *gin.Context) {
	house, err := h.svc.GetHouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, house)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	house, err := h.svc.UpdateHouse(c.Request.Context(), middleware.Principal(c), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, house)
}

func (h *Handler) AvailableRooms(c *gin.Context) {
	rooms, err := h.svc.GetAvailableRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}
