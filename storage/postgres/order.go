package postgres

import (
	"context"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/logger"
	psqlpool "catalog/catalog_admin_data_service/pool"
	"catalog/catalog_admin_data_service/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

type orderRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewOrderRepo(db *psqlpool.Pool, log logger.LoggerI) storage.OrderRepoI {
	return &orderRepo{
		db:  db,
		log: log,
	}
}

// Create inserts the order and its items in one transaction. All referenced
// offerings must exist before any row is written.
func (o *orderRepo) Create(ctx context.Context, req *models.Order, items []models.OrderItem) (resp *models.Order, err error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "order.Create")
	defer dbSpan.Finish()

	if len(items) == 0 {
		return nil, errors.New("order requires at least one item")
	}

	if len(req.OrderID) == 0 {
		req.OrderID = uuid.NewString()
	}
	if len(req.Status) == 0 {
		req.Status = "open"
	}

	offeringIDs := make([]string, 0, len(items))
	for _, item := range items {
		offeringIDs = append(offeringIDs, item.OfferingID)
	}

	tx, err := o.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var known int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(DISTINCT offering_id) FROM "wholesaler_item_offering" WHERE offering_id = ANY($1::uuid[])`,
		pq.Array(offeringIDs),
	).Scan(&known)
	if err != nil {
		return nil, errors.Wrap(err, "check offerings")
	}
	if known != int64(len(uniqueStrings(offeringIDs))) {
		return nil, errors.New("order references unknown offerings")
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO "orders" (order_id, wholesaler_id, status) VALUES ($1, $2, $3) RETURNING order_date`,
		req.OrderID, req.WholesalerID, req.Status,
	).Scan(&req.OrderDate)
	if err != nil {
		return nil, errors.Wrap(err, "insert order")
	}

	for i := range items {
		if len(items[i].OrderItemID) == 0 {
			items[i].OrderItemID = uuid.NewString()
		}
		items[i].OrderID = req.OrderID

		_, err = tx.Exec(ctx,
			`INSERT INTO "order_item" (order_item_id, order_id, offering_id, quantity, item_price)
			VALUES ($1, $2, $3, $4, $5)`,
			items[i].OrderItemID, items[i].OrderID, items[i].OfferingID, items[i].Quantity, items[i].ItemPrice,
		)
		if err != nil {
			return nil, errors.Wrap(err, "insert order item")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit order")
	}

	return req, nil
}

func (o *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "order.GetByID")
	defer dbSpan.Finish()

	resp := models.Order{}

	query := `SELECT order_id, wholesaler_id, order_date, status FROM "orders" WHERE order_id = $1`

	err := o.db.QueryRow(ctx, query, id).Scan(
		&resp.OrderID,
		&resp.WholesalerID,
		&resp.OrderDate,
		&resp.Status,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}

	return &resp, nil
}

func (o *orderRepo) Delete(ctx context.Context, id string, req models.DeleteRequest) (resp *models.DeleteResult, err error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "order.Delete")
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

	resp, err = DeleteEntity(ctx, tx, config.EntityOrder, id, req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit order delete")
	}

	return resp, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
