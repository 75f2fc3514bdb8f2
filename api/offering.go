package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateOffering(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.CreateOffering", nil)
	defer span.Finish()

	var req models.Offering
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}

	resp, err := h.strg.Offering().Create(ctx, &req)
	if err != nil {
		h.handleError(c, err, "CreateOffering")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) GetOffering(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetOffering", c.Param("id"))
	defer span.Finish()

	resp, err := h.strg.Offering().GetByID(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "GetOffering")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) UpdateOffering(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.UpdateOffering", c.Param("id"))
	defer span.Finish()

	var req models.Offering
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.OfferingID = c.Param("id")

	resp, err := h.strg.Offering().Update(ctx, &req)
	if err != nil {
		h.handleError(c, err, "UpdateOffering")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) DeleteOffering(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeleteOffering", c.Param("id"))
	defer span.Finish()

	var req models.DeleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBadRequest(c, err)
			return
		}
	}

	h.log.Info("---DeleteOffering--->>>",
		logger.String("id", c.Param("id")),
		logger.Bool("cascade", req.Cascade))

	resp, err := h.strg.Offering().Delete(ctx, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "DeleteOffering")
		return
	}

	h.handleSuccess(c, http.StatusOK, resp)
}

func (h *Handler) AddOfferingAttribute(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.AddOfferingAttribute", c.Param("id"))
	defer span.Finish()

	var req models.OfferingAttribute
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.OfferingID = c.Param("id")

	resp, err := h.strg.Offering().AddAttribute(ctx, &req)
	if err != nil {
		h.handleError(c, err, "AddOfferingAttribute")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) AddOfferingLink(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.AddOfferingLink", c.Param("id"))
	defer span.Finish()

	var req models.OfferingLink
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}
	req.OfferingID = c.Param("id")

	resp, err := h.strg.Offering().AddLink(ctx, &req)
	if err != nil {
		h.handleError(c, err, "AddOfferingLink")
		return
	}

	h.handleSuccess(c, http.StatusCreated, resp)
}
