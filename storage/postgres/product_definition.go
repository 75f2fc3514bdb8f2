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
	"github.com/jackc/pgtype"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

type productDefinitionRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewProductDefinitionRepo(db *psqlpool.Pool, log logger.LoggerI) storage.ProductDefinitionRepoI {
	return &productDefinitionRepo{
		db:  db,
		log: log,
	}
}

func (p *productDefinitionRepo) Create(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "product_definition.Create")
	defer dbSpan.Finish()

	if len(req.ProductDefID) == 0 {
		req.ProductDefID = uuid.NewString()
	}

	var description any = req.Description
	if len(req.Description) == 0 {
		description = nil
	}

	query, args, err := sb.Insert("product_definition").
		Columns("product_def_id", "category_id", "title", "description").
		Values(req.ProductDefID, req.CategoryID, req.Title, description).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert product definition")
	}

	if err := p.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "insert product definition")
	}

	return req, nil
}

func (p *productDefinitionRepo) GetByID(ctx context.Context, id string) (*models.ProductDefinition, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "product_definition.GetByID")
	defer dbSpan.Finish()

	var (
		resp        = models.ProductDefinition{}
		description pgtype.Text
	)

	query := `SELECT product_def_id, category_id, title, description, created_at
		FROM "product_definition" WHERE product_def_id = $1`

	err := p.db.QueryRow(ctx, query, id).Scan(
		&resp.ProductDefID,
		&resp.CategoryID,
		&resp.Title,
		&description,
		&resp.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get product definition")
	}

	if description.Status == pgtype.Present {
		resp.Description = description.String
	}

	return &resp, nil
}

func (p *productDefinitionRepo) Update(ctx context.Context, req *models.ProductDefinition) (*models.ProductDefinition, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "product_definition.Update")
	defer dbSpan.Finish()

	query, args, err := sb.Update("product_definition").
		SetMap(map[string]any{
			"category_id": req.CategoryID,
			"title":       req.Title,
			"description": req.Description,
		}).
		Where(squirrel.Eq{"product_def_id": req.ProductDefID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render update product definition")
	}

	if err := p.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "update product definition")
	}

	return req, nil
}

func (p *productDefinitionRepo) Delete(ctx context.Context, id string, req models.DeleteRequest) (resp *models.DeleteResult, err error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "product_definition.Delete")
	defer dbSpan.Finish()

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	resp, err = DeleteEntity(ctx, tx, config.EntityProductDefinition, id, req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit product definition delete")
	}

	return resp, nil
}

func (p *productDefinitionRepo) AddImage(ctx context.Context, req *models.ProductImage) (*models.ProductImage, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "product_definition.AddImage")
	defer dbSpan.Finish()

	if len(req.ImageID) == 0 {
		req.ImageID = uuid.NewString()
	}

	query, args, err := sb.Insert("product_definition_image").
		Columns("image_id", "product_def_id", "object_key", "sort_order").
		Values(req.ImageID, req.ProductDefID, req.ObjectKey, req.SortOrder).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert image")
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return nil, errors.Wrap(err, "insert image")
	}

	return req, nil
}
