package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProductDefinition(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.CreateProductDefinition", nil)
	defer span.Finish()

	var req models.ProductDefinition
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}

	resp, err := h.strg.ProductDefinition().Create(ctx, &req)
	if err != nil {
		h.handleError(c, err, "CreateProductDefinition")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) GetProductDefinition(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetProductDefinition", c.Param("id"))
	defer span.Finish()

	resp, err := h.strg.ProductDefinition().GetByID(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "GetProductDefinition")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) UpdateProductDefinition(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.UpdateProductDefinition", c.Param("id"))
	defer span.Finish()

	var req models.ProductDefinition
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.ProductDefID = c.Param("id")

	resp, err := h.strg.ProductDefinition().Update(ctx, &req)
	if err != nil {
		h.handleError(c, err, "UpdateProductDefinition")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) DeleteProductDefinition(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeleteProductDefinition", c.Param("id"))
	defer span.Finish()

	var req models.DeleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBadRequest(c, err)
			return
		}
	}

	h.log.Info("---DeleteProductDefinition--->>>",
		logger.String("id", c.Param("id")),
		logger.Bool("cascade", req.Cascade))

	resp, err := h.strg.ProductDefinition().Delete(ctx, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "DeleteProductDefinition")
		return
	}

	// Blob cleanup happens strictly after commit.
	h.cleanupMedia(c, resp)

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) AddProductImage(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.AddProductImage", c.Param("id"))
	defer span.Finish()

	var req models.ProductImage
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.ProductDefID = c.Param("id")

	resp, err := h.strg.ProductDefinition().AddImage(ctx, &req)
	if err != nil {
		h.handleError(c, err, "AddProductImage")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}
