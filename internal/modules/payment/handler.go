package payment

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"guesthouse/internal/domain"
	"guesthouse/internal/middleware"
	"guesthouse/internal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/reservations/:id/payments", h.History)
	}

	if protected != nil {
		protected.POST("/reservations/:id/payments", h.Make)
		protected.GET("/houses/:id/payments/export", h.Export)
	}
}

func (h *Handler) Make(c *gin.Context) {
	var req MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.svc.MakePayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && resp != nil {
			response.ErrorWithDetails(c, http.StatusNotFound, "NOT_FOUND", resp.Msg, resp)
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) History(c *gin.Context) {
	payments, err := h.svc.GetPaymentHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// Export streams the house payment ledger as an XLSX attachment.
func (h *Handler) Export(c *gin.Context) {
	houseID := c.Param("id")

	var buf bytes.Buffer
	if err := h.svc.ExportLedger(c.Request.Context(), middleware.Principal(c), houseID, &buf); err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payments-%s.xlsx"`, houseID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
