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

type wholesalerRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewWholesalerRepo(db *psqlpool.Pool, log logger.LoggerI) storage.WholesalerRepoI {
	return &wholesalerRepo{
		db:  db,
		log: log,
	}
}

var sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (w *wholesalerRepo) Create(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "wholesaler.Create")
	defer dbSpan.Finish()

	if len(req.WholesalerID) == 0 {
		req.WholesalerID = uuid.NewString()
	}
	if len(req.Status) == 0 {
		req.Status = "active"
	}

	query, args, err := sb.Insert("wholesaler").
		Columns("wholesaler_id", "name", "region", "status").
		Values(req.WholesalerID, req.Name, req.Region, req.Status).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert wholesaler")
	}

	if err := w.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "insert wholesaler")
	}

	return req, nil
}

func (w *wholesalerRepo) GetByID(ctx context.Context, id string) (*models.Wholesaler, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "wholesaler.GetByID")
	defer dbSpan.Finish()

	resp := models.Wholesaler{}

	query := `SELECT wholesaler_id, name, region, status, created_at FROM "wholesaler" WHERE wholesaler_id = $1`

	err := w.db.QueryRow(ctx, query, id).Scan(
		&resp.WholesalerID,
		&resp.Name,
		&resp.Region,
		&resp.Status,
		&resp.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get wholesaler")
	}

	return &resp, nil
}

func (w *wholesalerRepo) Update(ctx context.Context, req *models.Wholesaler) (*models.Wholesaler, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "wholesaler.Update")
	defer dbSpan.Finish()

	query, args, err := sb.Update("wholesaler").
		SetMap(map[string]any{
			"name":   req.Name,
			"region": req.Region,
			"status": req.Status,
		}).
		Where(squirrel.Eq{"wholesaler_id": req.WholesalerID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render update wholesaler")
	}

	if err := w.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "update wholesaler")
	}

	return req, nil
}

func (w *wholesalerRepo) Delete(ctx context.Context, id string, req models.DeleteRequest) (resp *models.DeleteResult, err error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "wholesaler.Delete")
	defer dbSpan.Finish()

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	resp, err = DeleteEntity(ctx, tx, config.EntityWholesaler, id, req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit wholesaler delete")
	}

	return resp, nil
}

func (w *wholesalerRepo) AssignCategory(ctx context.Context, req *models.WholesalerCategory) (*models.WholesalerCategory, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "wholesaler.AssignCategory")
	defer dbSpan.Finish()

	query, args, err := sb.Insert("wholesaler_category").
		Columns("wholesaler_id", "category_id", "comment").
		Values(req.WholesalerID, req.CategoryID, req.Comment).
		Suffix("RETURNING link_date").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert assignment")
	}

	if err := w.db.QueryRow(ctx, query, args...).Scan(&req.LinkDate); err != nil {
		return nil, errors.Wrap(err, "insert assignment")
	}

	return req, nil
}

func (w *wholesalerRepo) UnassignCategory(ctx context.Context, wholesalerID, categoryID string) error {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "wholesaler.UnassignCategory")
	defer dbSpan.Finish()

	tag, err := w.db.Exec(ctx,
		`DELETE FROM "wholesaler_category" WHERE wholesaler_id = $1 AND category_id = $2`,
		wholesalerID, categoryID)
	if err != nil {
		return errors.Wrap(err, "delete assignment")
	}

	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Entity: "assignment", ID: wholesalerID + "/" + categoryID}
	}

	return nil
}
