package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.CreateCategory", nil)
	defer span.Finish()

	var req models.ProductCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}

	resp, err := h.strg.Category().Create(ctx, &req)
	if err != nil {
		h.handleError(c, err, "CreateCategory")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) GetCategory(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetCategory", c.Param("id"))
	defer span.Finish()

	resp, err := h.strg.Category().GetByID(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "GetCategory")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.UpdateCategory", c.Param("id"))
	defer span.Finish()

	var req models.ProductCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.CategoryID = c.Param("id")

	resp, err := h.strg.Category().Update(ctx, &req)
	if err != nil {
		h.handleError(c, err, "UpdateCategory")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeleteCategory", c.Param("id"))
	defer span.Finish()

	var req models.DeleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBadRequest(c, err)
			return
		}
	}

	h.log.Info("---DeleteCategory--->>>",
		logger.String("id", c.Param("id")),
		logger.Bool("cascade", req.Cascade))

	resp, err := h.strg.Category().Delete(ctx, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "DeleteCategory")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}
