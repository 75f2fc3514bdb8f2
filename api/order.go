package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.CreateOrder", nil)
	defer span.Finish()

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}

	h.log.Info("---CreateOrder--->>>",
		logger.String("wholesaler_id", req.Order.WholesalerID),
		logger.Int("items", len(req.Items)))

	resp, err := h.strg.Order().Create(ctx, &req.Order, req.Items)
	if err != nil {
		h.handleError(c, err, "CreateOrder")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) GetOrder(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetOrder", c.Param("id"))
	defer span.Finish()

	resp, err := h.strg.Order().GetByID(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "GetOrder")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeleteOrder", c.Param("id"))
	defer span.Finish()

	var req models.DeleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBadRequest(c, err)
			return
		}
	}

	resp, err := h.strg.Order().Delete(ctx, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "DeleteOrder")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}
