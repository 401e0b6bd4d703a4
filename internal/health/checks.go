package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	"github.com/hellofresh/health-go/v5"
	"github.com/redis/go-redis/v9"
)

type Endpoints struct {
	DB      *sql.DB
	Redis   redis.UniversalClient
	Gateway payments.Gateway
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.OTel.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check:     databaseCheck(endpoints.DB),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check:     redisCheck(endpoints.Redis),
			},
			health.Config{
				// the store keeps browsing while the gateway is down, only checkout is affected
				Name:      "payments",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check:     gatewayCheck(endpoints.Gateway),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func databaseCheck(db *sql.DB) health.CheckFunc {
	return func(ctx context.Context) error {
		if db == nil {
			return fmt.Errorf("database is not initialized")
		}

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		var one int
		if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}

		return nil
	}
}

func redisCheck(client redis.UniversalClient) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("redis client is not initialized")
		}

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}

		return nil
	}
}

func gatewayCheck(gateway payments.Gateway) health.CheckFunc {
	return func(ctx context.Context) error {
		if gateway == nil {
			return fmt.Errorf("payment gateway is not initialized")
		}

		if err := gateway.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach %s: %w", gateway.Provider(), err)
		}

		return nil
	}
}
