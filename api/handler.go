package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/helper"
	"catalog/catalog_admin_data_service/pkg/logger"
	"catalog/catalog_admin_data_service/pkg/media"
	"catalog/catalog_admin_data_service/pkg/transformer"
	"catalog/catalog_admin_data_service/pkg/whitelist"
	"catalog/catalog_admin_data_service/storage"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type Handler struct {
	cfg      config.Config
	log      logger.LoggerI
	strg     storage.StorageI
	registry *whitelist.Registry
	aliases  transformer.AliasRegistry
	media    *media.Client
}

func NewHandler(cfg config.Config, log logger.LoggerI, strg storage.StorageI, registry *whitelist.Registry, mediaClient *media.Client) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		strg:     strg,
		registry: registry,
		aliases:  transformer.DefaultAliasRegistry(),
		media:    mediaClient,
	}
}

func (h *Handler) handleSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, models.NewSuccessResponse(data))
}

// handleError maps the error taxonomy onto JSON envelopes. Driver details
// are logged, never leaked.
func (h *Handler) handleError(c *gin.Context, err error, message string) {
	var (
		validationErr *models.ValidationError
		columnErr     *models.UnexpectedColumnError
		conflictErr   *models.DependencyConflictError
		notFoundErr   *models.NotFoundError
		serviceErr    *helper.ServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			ErrorCode:  "VALIDATION_ERROR",
			Message:    validationErr.Error(),
		})

	case errors.As(err, &columnErr):
		// Whitelist and shape drifted apart; this is a server bug.
		h.log.Error(message+": recordset shape mismatch", logger.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  "SHAPE_MISMATCH",
			Message:    "recordset did not match the expected shape",
		})

	case errors.As(err, &conflictErr):
		cascadeAvailable := conflictErr.CascadeAvailable()
		c.JSON(http.StatusConflict, models.ErrorResponse{
			StatusCode:       http.StatusConflict,
			ErrorCode:        "DEPENDENCY_CONFLICT",
			Message:          "entity has dependents",
			Dependencies:     &conflictErr.Report,
			CascadeAvailable: &cascadeAvailable,
		})

	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			StatusCode: http.StatusNotFound,
			ErrorCode:  "NOT_FOUND",
			Message:    notFoundErr.Error(),
		})

	case errors.As(err, &serviceErr):
		c.JSON(serviceErr.StatusCode, models.ErrorResponse{
			StatusCode: serviceErr.StatusCode,
			ErrorCode:  serviceErr.ErrorCode,
			Message:    serviceErr.Message,
		})

	default:
		mapped := helper.HandleDatabaseError(err, h.log, message)
		if errors.As(mapped, &serviceErr) {
			c.JSON(serviceErr.StatusCode, models.ErrorResponse{
				StatusCode: serviceErr.StatusCode,
				ErrorCode:  serviceErr.ErrorCode,
				Message:    serviceErr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  "INTERNAL",
			Message:    "internal error",
		})
	}
}

func (h *Handler) handleBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "BAD_REQUEST",
		Message:    err.Error(),
	})
}

// cleanupMedia removes orphaned image blobs once the delete transaction has
// committed.
func (h *Handler) cleanupMedia(c *gin.Context, result *models.DeleteResult) {
	if h.media == nil || len(result.RemovedObjectKeys) == 0 {
		return
	}
	h.media.RemoveObjects(c.Request.Context(), result.RemovedObjectKeys)
}
