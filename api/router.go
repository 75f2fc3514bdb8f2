package api

import (
	"net/http"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/pkg/logger"
	"catalog/catalog_admin_data_service/pkg/media"
	"catalog/catalog_admin_data_service/pkg/whitelist"
	"catalog/catalog_admin_data_service/storage"

	"github.com/gin-gonic/gin"
)

// SetUpRouter wires the HTTP surface.
func SetUpRouter(cfg config.Config, log logger.LoggerI, strg storage.StorageI, registry *whitelist.Registry, mediaClient *media.Client) *gin.Engine {
	h := NewHandler(cfg, log, strg, registry, mediaClient)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.Version})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/query/:view", h.RunQuery)

		v1.POST("/wholesaler", h.CreateWholesaler)
		v1.GET("/wholesaler/:id", h.GetWholesaler)
		v1.PUT("/wholesaler/:id", h.UpdateWholesaler)
		v1.DELETE("/wholesaler/:id", h.DeleteWholesaler)
		v1.POST("/wholesaler/:id/category/:categoryId", h.AssignCategory)
		v1.DELETE("/wholesaler/:id/category/:categoryId", h.UnassignCategory)

		v1.POST("/category", h.CreateCategory)
		v1.GET("/category/:id", h.GetCategory)
		v1.PUT("/category/:id", h.UpdateCategory)
		v1.DELETE("/category/:id", h.DeleteCategory)

		v1.POST("/product-definition", h.CreateProductDefinition)
		v1.GET("/product-definition/:id", h.GetProductDefinition)
		v1.PUT("/product-definition/:id", h.UpdateProductDefinition)
		v1.DELETE("/product-definition/:id", h.DeleteProductDefinition)
		v1.POST("/product-definition/:id/image", h.AddProductImage)

		v1.POST("/offering", h.CreateOffering)
		v1.GET("/offering/:id", h.GetOffering)
		v1.PUT("/offering/:id", h.UpdateOffering)
		v1.DELETE("/offering/:id", h.DeleteOffering)
		v1.POST("/offering/:id/attribute", h.AddOfferingAttribute)
		v1.POST("/offering/:id/link", h.AddOfferingLink)

		v1.POST("/order", h.CreateOrder)
		v1.GET("/order/:id", h.GetOrder)
		v1.DELETE("/order/:id", h.DeleteOrder)
	}

	return router
}
