package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
	AutoMigrate     bool          `yaml:"AUTO_MIGRATE" env:"PG_AUTO_MIGRATE" env-default:"true"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-required:"true"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-required:"true"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type CacheConfig struct {
	DefaultTTL       time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	ShippingQuoteTTL time.Duration `yaml:"shipping_quote_ttl" env:"CACHE_SHIPPING_QUOTE_TTL" env-default:"10m"`
	AddressTTL       time.Duration `yaml:"address_ttl" env:"CACHE_ADDRESS_TTL" env-default:"24h"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

const (
	ProviderMercadoPago = "mercadopago"
	ProviderStripe      = "stripe"
)

// Payments holds gateway settings. The access token never leaves the server.
type Payments struct {
	Provider            string        `yaml:"PROVIDER" env:"PAYMENTS_PROVIDER" env-default:"mercadopago"`
	AccessToken         string        `yaml:"ACCESS_TOKEN" env:"MERCADOPAGO_ACCESS_TOKEN"`
	BaseURL             string        `yaml:"BASE_URL" env:"MERCADOPAGO_BASE_URL" env-default:"https://api.mercadopago.com"`
	WebhookBaseURL      string        `yaml:"WEBHOOK_BASE_URL" env:"PAYMENTS_WEBHOOK_BASE_URL"`
	ReturnBaseURL       string        `yaml:"RETURN_BASE_URL" env:"PAYMENTS_RETURN_BASE_URL" env-default:"http://localhost:5173"`
	Production          bool          `yaml:"PRODUCTION" env:"PAYMENTS_PRODUCTION" env-default:"false"`
	StatementDescriptor string        `yaml:"STATEMENT_DESCRIPTOR" env:"PAYMENTS_STATEMENT_DESCRIPTOR" env-default:"MOTOSTORE"`
	Currency            string        `yaml:"CURRENCY" env:"PAYMENTS_CURRENCY" env-default:"BRL"`
	RequestTimeout      time.Duration `yaml:"REQUEST_TIMEOUT" env:"PAYMENTS_REQUEST_TIMEOUT" env-default:"20s"`
	PixExpiry           time.Duration `yaml:"PIX_EXPIRY" env:"PAYMENTS_PIX_EXPIRY" env-default:"30m"`
	PixPollInterval     time.Duration `yaml:"PIX_POLL_INTERVAL" env:"PAYMENTS_PIX_POLL_INTERVAL" env-default:"5s"`
	PixMaxAttempts      int           `yaml:"PIX_MAX_ATTEMPTS" env:"PAYMENTS_PIX_MAX_ATTEMPTS" env-default:"360"`
}

type Stripe struct {
	APIKey        string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	WebhookSecret string `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
}

type SendGrid struct {
	APIKey     string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail  string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@motostore.com.br"`
	FromName   string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Moto Store"`
	AdminEmail string `yaml:"ADMIN_EMAIL" env:"SENDGRID_ADMIN_EMAIL"`
}

type Shipping struct {
	Token            string        `yaml:"TOKEN" env:"SHIPPING_TOKEN"`
	BaseURL          string        `yaml:"BASE_URL" env:"SHIPPING_BASE_URL" env-default:"https://www.melhorenvio.com.br"`
	UserAgent        string        `yaml:"USER_AGENT" env:"SHIPPING_USER_AGENT" env-default:"helmet-storefront (contato@motostore.com.br)"`
	OriginPostalCode string        `yaml:"ORIGIN_POSTAL_CODE" env:"SHIPPING_ORIGIN_POSTAL_CODE" env-default:"01001000"`
	DefaultWeightKg  float64       `yaml:"DEFAULT_WEIGHT_KG" env:"SHIPPING_DEFAULT_WEIGHT_KG" env-default:"1.5"`
	PackageHeightCm  int           `yaml:"PACKAGE_HEIGHT_CM" env:"SHIPPING_PACKAGE_HEIGHT_CM" env-default:"30"`
	PackageWidthCm   int           `yaml:"PACKAGE_WIDTH_CM" env:"SHIPPING_PACKAGE_WIDTH_CM" env-default:"30"`
	PackageLengthCm  int           `yaml:"PACKAGE_LENGTH_CM" env:"SHIPPING_PACKAGE_LENGTH_CM" env-default:"35"`
	Timeout          time.Duration `yaml:"TIMEOUT" env:"SHIPPING_TIMEOUT" env-default:"10s"`
}

type Address struct {
	BaseURL string        `yaml:"BASE_URL" env:"ADDRESS_BASE_URL" env-default:"https://viacep.com.br"`
	Timeout time.Duration `yaml:"TIMEOUT" env:"ADDRESS_TIMEOUT" env-default:"5s"`
}

type Checkout struct {
	SessionTTL     time.Duration `yaml:"SESSION_TTL" env:"CHECKOUT_SESSION_TTL" env-default:"2h"`
	SubmitLockTTL  time.Duration `yaml:"SUBMIT_LOCK_TTL" env:"CHECKOUT_SUBMIT_LOCK_TTL" env-default:"1m"`
	DeleteTokenTTL time.Duration `yaml:"DELETE_TOKEN_TTL" env:"ADMIN_DELETE_TOKEN_TTL" env-default:"2m"`
}

type OTel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"helmet-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	Insecure         bool    `yaml:"INSECURE" env:"OTEL_EXPORTER_INSECURE" env-default:"true"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Security     Security     `yaml:"security"`
	Payments     Payments     `yaml:"payments"`
	Stripe       Stripe       `yaml:"stripe"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Shipping     Shipping     `yaml:"shipping"`
	Address      Address      `yaml:"address"`
	Checkout     Checkout     `yaml:"checkout"`
	OTel         OTel         `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

// Validate refuses configurations the payment flows cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Payments.Provider) {
	case ProviderMercadoPago:
		if strings.TrimSpace(c.Payments.AccessToken) == "" {
			return errors.New("payments access token is required")
		}
	case ProviderStripe:
		if strings.TrimSpace(c.Stripe.APIKey) == "" {
			return errors.New("stripe api key is required when stripe is the payments provider")
		}
	default:
		return fmt.Errorf("unknown payments provider %q", c.Payments.Provider)
	}

	u, err := url.Parse(c.Payments.ReturnBaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("payments return base url must be absolute, got %q", c.Payments.ReturnBaseURL)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Payments.Production
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
