package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/health"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/realtime"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/melhorenvio"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/sendgrid"
	storestripe "github.com/aaravmahajanofficial/helmet-storefront/pkg/stripe"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/viacep"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	db, repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	// External clients
	stripeClient := storestripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret,
		storestripe.WithHTTPClient(telemetry.Client(cfg.Payments.RequestTimeout)))

	gateway, err := newGateway(cfg, stripeClient)
	if err != nil {
		slog.Error("❌ Error creating the payment gateway", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shippingClient, err := melhorenvio.NewClient(cfg.Shipping.Token,
		melhorenvio.WithBaseURL(cfg.Shipping.BaseURL),
		melhorenvio.WithUserAgent(cfg.Shipping.UserAgent),
		melhorenvio.WithHTTPClient(telemetry.Client(cfg.Shipping.Timeout)),
	)
	if err != nil {
		slog.Error("❌ Error creating the shipping client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	addressClient := viacep.NewClient(
		viacep.WithBaseURL(cfg.Address.BaseURL),
		viacep.WithHTTPClient(telemetry.Client(cfg.Address.Timeout)),
	)

	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Payment events reach the SSE broker and the open checkouts
	broker := realtime.NewBroker(redisClient, realtime.DefaultChannel)
	if err := broker.Start(ctx); err != nil {
		slog.Error("❌ Error subscribing to payment events", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fanout := realtime.NewFanout(broker)

	pollers := payments.NewRegistry(payments.PollerConfig{
		Interval:    cfg.Payments.PixPollInterval,
		Tick:        time.Second,
		Window:      cfg.Payments.PixExpiry,
		MaxAttempts: cfg.Payments.PixMaxAttempts,
	})

	// Services
	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	userService := service.NewUserService(repos.User, repository.NewRateLimitRepo(redisClient, cfg), jwtKey, tokenTTL)
	productService := service.NewProductService(repos.Product, appCache, cfg.Checkout.DeleteTokenTTL)
	catalogService := service.NewCatalogService(repos.Catalog, appCache, cfg.Checkout.DeleteTokenTTL)
	cartService := service.NewCartService(repos.Cart, repos.Product, appCache)
	orderService := service.NewOrderService(repos.Order)
	notificationService := service.NewNotificationService(repos.Notification, emailClient, cfg.SendGrid.AdminEmail)
	messageService := service.NewMessageService(repos.Message, notificationService, appCache, cfg.Checkout.DeleteTokenTTL)
	shippingService := service.NewShippingService(shippingClient, appCache, cfg.Shipping, cfg.Cache.ShippingQuoteTTL)
	addressService := service.NewAddressService(addressClient, appCache, cfg.Cache.AddressTTL, cfg.Address.Timeout)
	paymentService := service.NewPaymentService(service.PaymentDeps{
		PaymentRepo:   repos.Payment,
		OrderRepo:     repos.Order,
		ProductRepo:   repos.Product,
		Carts:         cartService,
		Notifications: notificationService,
		Gateway:       gateway,
		StripeClient:  stripeClient,
		Publisher:     fanout,
		Currency:      cfg.Payments.Currency,
	})

	checkoutService := checkout.NewService(checkout.Deps{
		Store:     checkout.NewStore(appCache, cfg.Checkout.SessionTTL, cfg.Checkout.SubmitLockTTL),
		Carts:     cartService,
		Products:  repos.Product,
		Shipping:  shippingService,
		Orders:    orderService,
		Payments:  paymentService,
		Gateway:   gateway,
		Pollers:   pollers,
		Validator: utils.NewValidator(),
	})
	fanout.Add(checkoutService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	shippingHandler := handlers.NewShippingHandler(shippingService, addressService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	streamHandler := realtime.NewStreamHandler(broker, 0)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: db.DB, Redis: redisClient, Gateway: gateway})
	if err != nil {
		slog.Error("❌ Error creating the health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"), slog.String("payments", gateway.Provider()))

	// Setup router
	routerMux := http.NewServeMux()

	// Public
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/brands", catalogHandler.ListBrands())
	routerMux.HandleFunc("POST /api/v1/shipping/quote", shippingHandler.Quote())
	routerMux.HandleFunc("GET /api/v1/address/{postalCode}", shippingHandler.LookupAddress())
	routerMux.HandleFunc("POST /api/v1/contact", messageHandler.Submit())
	routerMux.HandleFunc("POST /api/v1/webhooks/mercadopago", paymentHandler.MercadoPagoWebhook())
	routerMux.HandleFunc("POST /api/v1/webhooks/stripe", paymentHandler.StripeWebhook())

	// Customer
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Start()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Get()))
	routerMux.HandleFunc("DELETE /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Close()))
	routerMux.HandleFunc("PUT /api/v1/checkout/address", authMiddleware.Authenticate(checkoutHandler.SubmitAddress()))
	routerMux.HandleFunc("PUT /api/v1/checkout/shipping", authMiddleware.Authenticate(checkoutHandler.SelectShipping()))
	routerMux.HandleFunc("POST /api/v1/checkout/back", authMiddleware.Authenticate(checkoutHandler.Back()))
	routerMux.HandleFunc("POST /api/v1/checkout/payment", authMiddleware.Authenticate(checkoutHandler.SubmitPayment()))
	routerMux.HandleFunc("GET /api/v1/checkout/payment/status", authMiddleware.Authenticate(checkoutHandler.PaymentStatus()))
	routerMux.HandleFunc("POST /api/v1/checkout/return", authMiddleware.Authenticate(checkoutHandler.Return()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/payments", authMiddleware.Authenticate(paymentHandler.ListPayments()))
	routerMux.HandleFunc("GET /api/v1/payments/installments", authMiddleware.Authenticate(paymentHandler.Installments()))
	routerMux.HandleFunc("GET /api/v1/events", authMiddleware.Authenticate(streamHandler.Events()))

	// Admin
	routerMux.HandleFunc("GET /api/v1/admin/products", authMiddleware.Admin(productHandler.AdminListProducts()))
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.Admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/admin/products/{id}", authMiddleware.Admin(productHandler.AdminGetProduct()))
	routerMux.HandleFunc("PATCH /api/v1/admin/products/{id}", authMiddleware.Admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.Admin(productHandler.RequestDeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/admin/products/{id}/confirm-delete", authMiddleware.Admin(productHandler.ConfirmDeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/admin/categories", authMiddleware.Admin(catalogHandler.CreateCategory()))
	routerMux.HandleFunc("PUT /api/v1/admin/categories/{id}", authMiddleware.Admin(catalogHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/admin/categories/{id}", authMiddleware.Admin(catalogHandler.RequestDeleteCategory()))
	routerMux.HandleFunc("POST /api/v1/admin/categories/{id}/confirm-delete", authMiddleware.Admin(catalogHandler.ConfirmDeleteCategory()))
	routerMux.HandleFunc("POST /api/v1/admin/brands", authMiddleware.Admin(catalogHandler.CreateBrand()))
	routerMux.HandleFunc("PUT /api/v1/admin/brands/{id}", authMiddleware.Admin(catalogHandler.UpdateBrand()))
	routerMux.HandleFunc("DELETE /api/v1/admin/brands/{id}", authMiddleware.Admin(catalogHandler.RequestDeleteBrand()))
	routerMux.HandleFunc("POST /api/v1/admin/brands/{id}/confirm-delete", authMiddleware.Admin(catalogHandler.ConfirmDeleteBrand()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.Admin(orderHandler.AdminListOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", authMiddleware.Admin(orderHandler.AdminGetOrder()))
	routerMux.HandleFunc("PUT /api/v1/admin/orders/{id}/status", authMiddleware.Admin(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /api/v1/admin/stats", authMiddleware.Admin(orderHandler.Stats()))
	routerMux.HandleFunc("GET /api/v1/admin/messages", authMiddleware.Admin(messageHandler.ListMessages()))
	routerMux.HandleFunc("GET /api/v1/admin/messages/{id}", authMiddleware.Admin(messageHandler.GetMessage()))
	routerMux.HandleFunc("PATCH /api/v1/admin/messages/{id}", authMiddleware.Admin(messageHandler.MarkRead()))
	routerMux.HandleFunc("DELETE /api/v1/admin/messages/{id}", authMiddleware.Admin(messageHandler.RequestDeleteMessage()))
	routerMux.HandleFunc("POST /api/v1/admin/messages/{id}/confirm-delete", authMiddleware.Admin(messageHandler.ConfirmDeleteMessage()))
	routerMux.HandleFunc("POST /api/v1/admin/notifications/email", authMiddleware.Admin(notificationHandler.SendEmail()))
	routerMux.HandleFunc("GET /api/v1/admin/notifications", authMiddleware.Admin(notificationHandler.ListNotifications()))
	routerMux.HandleFunc("GET /api/v1/admin/notifications/{id}", authMiddleware.Admin(notificationHandler.GetNotification()))

	// Health checks
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = telemetry.Handler(handler, cfg.OTel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// event streams never finish on their own, close them before draining the server
	if err := broker.Close(); err != nil {
		slog.Error("⚠️ Error closing the event broker", slog.String("error", err.Error()))
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := pollers.Close(); err != nil {
		slog.Error("⚠️ Error stopping PIX pollers", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}

	if err := db.Close(); err != nil {
		slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Database connection closed")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

func newGateway(cfg *config.Config, stripeClient storestripe.Client) (payments.Gateway, error) {
	if strings.EqualFold(cfg.Payments.Provider, config.ProviderStripe) {
		return payments.NewStripeGateway(stripeClient, &cfg.Payments), nil
	}

	client, err := mercadopago.NewClient(cfg.Payments.AccessToken,
		mercadopago.WithBaseURL(cfg.Payments.BaseURL),
		mercadopago.WithHTTPClient(telemetry.Client(cfg.Payments.RequestTimeout)),
	)
	if err != nil {
		return nil, err
	}

	return payments.NewMercadoPagoGateway(client, &cfg.Payments), nil
}
