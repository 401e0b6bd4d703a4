package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Repository struct {
	DB *sql.DB
}

type Repositories struct {
	User         UserRepository
	Product      ProductRepository
	Catalog      CatalogRepository
	Cart         CartRepository
	Order        OrderRepository
	Payment      PaymentRepository
	Message      MessageRepository
	Notification NotificationRepository
}

func New(ctx context.Context, cfg *config.Config) (*Repository, *Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithSpanOptions(otelsql.SpanOptions{DisableErrSkip: true}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, db); err != nil {
			db.Close()

			return nil, nil, err
		}
	}

	return &Repository{DB: db}, NewRepositories(db), nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Catalog:      NewCatalogRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepository(db),
		Payment:      NewPaymentRepository(db),
		Message:      NewMessageRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err == nil {
		slog.Info("Database migrations applied", slog.Int64("version", version))
	}

	return nil
}

func (p *Repository) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
