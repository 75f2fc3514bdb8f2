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

type offeringRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewOfferingRepo(db *psqlpool.Pool, log logger.LoggerI) storage.OfferingRepoI {
	return &offeringRepo{
		db:  db,
		log: log,
	}
}

func (o *offeringRepo) Create(ctx context.Context, req *models.Offering) (*models.Offering, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "offering.Create")
	defer dbSpan.Finish()

	if len(req.OfferingID) == 0 {
		req.OfferingID = uuid.NewString()
	}
	if len(req.Currency) == 0 {
		req.Currency = "EUR"
	}

	query, args, err := sb.Insert("wholesaler_item_offering").
		Columns("offering_id", "wholesaler_id", "category_id", "product_def_id", "price", "currency").
		Values(req.OfferingID, req.WholesalerID, req.CategoryID, req.ProductDefID, req.Price, req.Currency).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert offering")
	}

	if err := o.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "insert offering")
	}

	return req, nil
}

func (o *offeringRepo) GetByID(ctx context.Context, id string) (*models.Offering, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "offering.GetByID")
	defer dbSpan.Finish()

	resp := models.Offering{}

	query := `SELECT offering_id, wholesaler_id, category_id, product_def_id, price, currency, created_at
		FROM "wholesaler_item_offering" WHERE offering_id = $1`

	err := o.db.QueryRow(ctx, query, id).Scan(
		&resp.OfferingID,
		&resp.WholesalerID,
		&resp.CategoryID,
		&resp.ProductDefID,
		&resp.Price,
		&resp.Currency,
		&resp.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get offering")
	}

	return &resp, nil
}

func (o *offeringRepo) Update(ctx context.Context, req *models.Offering) (*models.Offering, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "offering.Update")
	defer dbSpan.Finish()

	query, args, err := sb.Update("wholesaler_item_offering").
		SetMap(map[string]any{
			"price":    req.Price,
			"currency": req.Currency,
		}).
		Where(squirrel.Eq{"offering_id": req.OfferingID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render update offering")
	}

	if err := o.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "update offering")
	}

	return req, nil
}

func (o *offeringRepo) Delete(ctx context.Context, id string, req models.DeleteRequest) (resp *models.DeleteResult, err error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "offering.Delete")
	defer dbSpan.Finish()

	tx, err := o.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	resp, err = DeleteEntity(ctx, tx, config.EntityOffering, id, req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit offering delete")
	}

	return resp, nil
}

func (o *offeringRepo) AddAttribute(ctx context.Context, req *models.OfferingAttribute) (*models.OfferingAttribute, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "offering.AddAttribute")
	defer dbSpan.Finish()

	if len(req.AttributeID) == 0 {
		req.AttributeID = uuid.NewString()
	}

	query, args, err := sb.Insert("wholesaler_offering_attribute").
		Columns("attribute_id", "offering_id", "attribute_name", "value").
		Values(req.AttributeID, req.OfferingID, req.AttributeName, req.Value).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert attribute")
	}

	if _, err := o.db.Exec(ctx, query, args...); err != nil {
		return nil, errors.Wrap(err, "insert attribute")
	}

	return req, nil
}

func (o *offeringRepo) AddLink(ctx context.Context, req *models.OfferingLink) (*models.OfferingLink, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "offering.AddLink")
	defer dbSpan.Finish()

	if len(req.LinkID) == 0 {
		req.LinkID = uuid.NewString()
	}

	query, args, err := sb.Insert("wholesaler_offering_link").
		Columns("link_id", "offering_id", "url", "notes").
		Values(req.LinkID, req.OfferingID, req.URL, req.Notes).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "render insert link")
	}

	if _, err := o.db.Exec(ctx, query, args...); err != nil {
		return nil, errors.Wrap(err, "insert link")
	}

	return req, nil
}
