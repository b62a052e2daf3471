package guest

import (
	"net/http"

	"github.com/gin-gonic/gin"

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
		public.GET("/guests/:id", h.Get)
		public.GET("/guests/:id/requests", h.ListRequests)
	}

	if protected != nil {
		protected.POST("/guests", h.Add)
		protected.PUT("/guests/:id", h.Update)
		protected.DELETE("/guests/:id", h.Delete)
		protected.POST("/guests/:id/requests", h.SubmitRequest)
		protected.PUT("/guest-requests/:id/status", h.UpdateRequestStatus)
	}
}

func (h *Handler) Add(c *gin.Context) {
	var req GuestRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.svc.AddGuest(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) Get(c *gin.Context) {
	g, err := h.svc.GetGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) Update(c *gin.Context) {
	var req GuestRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	g, err := h.svc.UpdateGuest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) Delete(c *gin.Context) {
	msg, err := h.svc.DeleteGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, MessageResponse{Message: msg})
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var req SubmitRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.svc.SubmitGuestRequest(c.Request.Context(), c.Param("id"), req.Details)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListRequests(c *gin.Context) {
	reqs, err := h.svc.GetGuestRequestsByGuestID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reqs)
}

func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	var req UpdateRequestStatusBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.svc.UpdateGuestRequestStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, IDResponse{ID: id})
}
