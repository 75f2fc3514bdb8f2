package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateWholesaler(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.CreateWholesaler", nil)
	defer span.Finish()

	var req models.Wholesaler
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}

	h.log.Info("---CreateWholesaler--->>>", logger.String("name", req.Name))

	resp, err := h.strg.Wholesaler().Create(ctx, &req)
	if err != nil {
		h.handleError(c, err, "CreateWholesaler")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) GetWholesaler(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetWholesaler", c.Param("id"))
	defer span.Finish()

	resp, err := h.strg.Wholesaler().GetByID(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "GetWholesaler")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) UpdateWholesaler(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.UpdateWholesaler", c.Param("id"))
	defer span.Finish()

	var req models.Wholesaler
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.WholesalerID = c.Param("id")

	resp, err := h.strg.Wholesaler().Update(ctx, &req)
	if err != nil {
		h.handleError(c, err, "UpdateWholesaler")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) DeleteWholesaler(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeleteWholesaler", c.Param("id"))
	defer span.Finish()

	var req models.DeleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBadRequest(c, err)
			return
		}
	}

	h.log.Info("---DeleteWholesaler--->>>",
		logger.String("id", c.Param("id")),
		logger.Bool("cascade", req.Cascade),
		logger.Bool("force_cascade", req.ForceCascade))

	resp, err := h.strg.Wholesaler().Delete(ctx, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "DeleteWholesaler")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) AssignCategory(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.AssignCategory", c.Param("id"))
	defer span.Finish()

	var req models.WholesalerCategory
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBadRequest(c, err)
			return
		}
	}
	req.WholesalerID = c.Param("id")
	req.CategoryID = c.Param("categoryId")

	resp, err := h.strg.Wholesaler().AssignCategory(ctx, &req)
	if err != nil {
		h.handleError(c, err, "AssignCategory")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) UnassignCategory(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.UnassignCategory", c.Param("id"))
	defer span.Finish()

	err := h.strg.Wholesaler().UnassignCategory(ctx, c.Param("id"), c.Param("categoryId"))
	if err != nil {
		h.handleError(c, err, "UnassignCategory")
		return
	}

	h.handleSuccess(c, http.StatusOK, gin.H{"unassigned": true})
}
