package postgres

import (
	"context"
	"fmt"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/pkg/logger"
	psqlpool "catalog/catalog_admin_data_service/pool"
	"catalog/catalog_admin_data_service/storage"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db  *psqlpool.Pool
	log logger.LoggerI

	wholesaler        storage.WholesalerRepoI
	category          storage.CategoryRepoI
	productDefinition storage.ProductDefinitionRepoI
	offering          storage.OfferingRepoI
	order             storage.OrderRepoI
	query             storage.QueryRepoI
}

func dbURL(cfg config.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDatabase,
	)
}

func NewPostgres(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	poolConfig, err := pgxpool.ParseConfig(dbURL(cfg))
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:  &psqlpool.Pool{Db: pool},
		log: log,
	}, nil
}

// RunMigrations applies pending schema migrations before the service starts.
func RunMigrations(cfg config.Config) error {
	m, err := migrate.New(cfg.MigrationsPath, dbURL(cfg))
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func (s *Store) CloseDB() {
	s.db.Close()
}

func (s *Store) Wholesaler() storage.WholesalerRepoI {
	if s.wholesaler == nil {
		s.wholesaler = NewWholesalerRepo(s.db, s.log)
	}

	return s.wholesaler
}

func (s *Store) Category() storage.CategoryRepoI {
	if s.category == nil {
		s.category = NewCategoryRepo(s.db, s.log)
	}

	return s.category
}

func (s *Store) ProductDefinition() storage.ProductDefinitionRepoI {
	if s.productDefinition == nil {
		s.productDefinition = NewProductDefinitionRepo(s.db, s.log)
	}

	return s.productDefinition
}

func (s *Store) Offering() storage.OfferingRepoI {
	if s.offering == nil {
		s.offering = NewOfferingRepo(s.db, s.log)
	}

	return s.offering
}

func (s *Store) Order() storage.OrderRepoI {
	if s.order == nil {
		s.order = NewOrderRepo(s.db, s.log)
	}

	return s.order
}

func (s *Store) Query() storage.QueryRepoI {
	if s.query == nil {
		s.query = NewQueryRepo(s.db, s.log)
	}

	return s.query
}
