package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/helper"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"
	"catalog/catalog_admin_data_service/pkg/querybuilder"
	"catalog/catalog_admin_data_service/pkg/transformer"

	"github.com/gin-gonic/gin"
)

type queryRequest struct {
	Payload models.QueryPayload `json:"payload"`
}

// RunQuery compiles a declarative payload against the target view, executes
// it, and reshapes the flat recordset into nested objects. The target and
// its result shape are resolved before any SQL runs.
func (h *Handler) RunQuery(c *gin.Context) {
	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.RunQuery", c.Param("view"))
	defer span.Finish()

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, err)
		return
	}

	h.log.Info("---RunQuery--->>>", logger.String("view", c.Param("view")))

	target := req.Payload.From
	if target == "" {
		target = c.Param("view")
	}
	if !h.registry.HasTarget(target) {
		h.handleError(c, models.NewValidationError("unknown table/view", target), "RunQuery.Target")
		return
	}

	shape, ok := transformer.ShapeForView(target)
	if !ok {
		// Whitelisted but shapeless: the registries drifted apart.
		h.log.Error("---RunQuery--->>> no result shape registered", logger.String("target", target))
		h.handleError(c, helper.NewServiceError(http.StatusInternalServerError, "SHAPE_MISMATCH",
			"no result shape registered for the target"), "RunQuery.Shape")
		return
	}

	compiled, err := querybuilder.Compile(req.Payload, h.registry, c.Param("view"))
	if err != nil {
		h.handleError(c, err, "RunQuery.Compile")
		return
	}

	rows, err := h.strg.Query().Execute(ctx, compiled)
	if err != nil {
		h.handleError(c, err, "RunQuery.Execute")
		return
	}

	data, err := transformer.Transform(rows, shape, h.aliases, compiled.Metadata.ResultAliases)
	if err != nil {
		h.handleError(c, err, "RunQuery.Transform")
		return
	}

	h.handleSuccess(c, http.StatusOK, gin.H{
		"results":  data,
		"metadata": compiled.Metadata,
	})
}
