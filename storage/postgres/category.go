package postgres

import (
	"context"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/logger"
	psqlpool "catalog/catalog_admin_data_service/pool"
	"catalog/catalog_admin_data_service/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

type categoryRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewCategoryRepo(db *psqlpool.Pool, log logger.LoggerI) storage.CategoryRepoI {
	return &categoryRepo{
		db:  db,
		log: log,
	}
}

func (c *categoryRepo) Create(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "category.Create")
	defer dbSpan.Finish()

	if len(req.CategoryID) == 0 {
		req.CategoryID = uuid.NewString()
	}

	query, args, err := sb.Insert("product_category").
		Columns("category_id", "name").
		Values(req.CategoryID, req.Name).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert category")
	}

	if err := c.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "insert category")
	}

	return req, nil
}

func (c *categoryRepo) GetByID(ctx context.Context, id string) (*models.ProductCategory, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "category.GetByID")
	defer dbSpan.Finish()

	resp := models.ProductCategory{}

	query := `SELECT category_id, name, created_at FROM "product_category" WHERE category_id = $1`

	err := c.db.QueryRow(ctx, query, id).Scan(
		&resp.CategoryID,
		&resp.Name,
		&resp.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get category")
	}

	return &resp, nil
}

func (c *categoryRepo) Update(ctx context.Context, req *models.ProductCategory) (*models.ProductCategory, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "category.Update")
	defer dbSpan.Finish()

	query, args, err := sb.Update("product_category").
		SetMap(map[string]any{"name": req.Name}).
		Where(squirrel.Eq{"category_id": req.CategoryID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render update category")
	}

	if err := c.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "update category")
	}

	return req, nil
}

func (c *categoryRepo) Delete(ctx context.Context, id string, req models.DeleteRequest) (resp *models.DeleteResult, err error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "category.Delete")
	defer dbSpan.Finish()

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	resp, err = DeleteEntity(ctx, tx, config.EntityCategory, id, req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit category delete")
	}

	return resp, nil
}
