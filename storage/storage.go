package storage

import (
	"context"

	"catalog/catalog_admin_data_service/models"
)

type StorageI interface {
	CloseDB()
	Wholesaler() WholesalerRepoI
	Category() CategoryRepoI
	ProductDefinition() ProductDefinitionRepoI
	Offering() OfferingRepoI
	Order() OrderRepoI
	Query() QueryRepoI
}

type WholesalerRepoI interface {
	Create(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error)
	GetByID(ctx context.Context, id string) (*models.Wholesaler, error)
	Update(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error)
	Delete(ctx context.Context, id string, req models.DeleteRequest) (*models.DeleteResult, error)
	AssignCategory(ctx context.Context, req *models.WholesalerCategory) (*models.WholesalerCategory, error)
	UnassignCategory(ctx context.Context, wholesalerID, categoryID string) error
}

type CategoryRepoI interface {
	Create(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error)
	GetByID(ctx context.Context, id string) (*models.ProductCategory, error)
	Update(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error)
	Delete(ctx context.Context, id string, req models.DeleteRequest) (*models.DeleteResult, error)
}

type ProductDefinitionRepoI interface {
	Create(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error)
	GetByID(ctx context.Context, id string) (*models.ProductDefinition, error)
	Update(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error)
	Delete(ctx context.Context, id string, req models.DeleteRequest) (*models.DeleteResult, error)
	AddImage(ctx context.Context, req *models.ProductImage) (*models.ProductImage, error)
}

type OfferingRepoI interface {
	Create(ctx context.Context, req *models.Offering) (*models.Offering, error)
	GetByID(ctx context.Context, id string) (*models.Offering, error)
	Update(ctx context.Context, req *models.Offering) (*models.Offering, error)
	Delete(ctx context.Context, id string, req models.DeleteRequest) (*models.DeleteResult, error)
	AddAttribute(ctx context.Context, req *models.OfferingAttribute) (*models.OfferingAttribute, error)
	AddLink(ctx context.Context, req *models.OfferingLink) (*models.OfferingLink, error)
}

type OrderRepoI interface {
	Create(ctx context.Context, req *models.Order, items []models.OrderItem) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Delete(ctx context.Context, id string, req models.DeleteRequest) (*models.DeleteResult, error)
}

type QueryRepoI interface {
	Execute(ctx context.Context, compiled *models.CompiledQuery) ([]map[string]any, error)
}
