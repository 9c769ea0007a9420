package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	cartapp "github.com/wyfcoding/ecommerce/internal/cart/application"
	cartdomain "github.com/wyfcoding/ecommerce/internal/cart/domain"
	cartmsg "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/messaging"
	cartmem "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/persistence/memory"
	carthttp "github.com/wyfcoding/ecommerce/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/ecommerce/internal/catalog/application"
	catalogmem "github.com/wyfcoding/ecommerce/internal/catalog/infrastructure/persistence/memory"
	cataloghttp "github.com/wyfcoding/ecommerce/internal/catalog/interfaces/http"
	checkoutapp "github.com/wyfcoding/ecommerce/internal/checkout/application"
	checkoutdomain "github.com/wyfcoding/ecommerce/internal/checkout/domain"
	checkoutpay "github.com/wyfcoding/ecommerce/internal/checkout/infrastructure/payment"
	checkoutmem "github.com/wyfcoding/ecommerce/internal/checkout/infrastructure/persistence/memory"
	checkouthttp "github.com/wyfcoding/ecommerce/internal/checkout/interfaces/http"
	dashboardapp "github.com/wyfcoding/ecommerce/internal/dashboard/application"
	dashboardhttp "github.com/wyfcoding/ecommerce/internal/dashboard/interfaces/http"
	orderapp "github.com/wyfcoding/ecommerce/internal/order/application"
	orderdomain "github.com/wyfcoding/ecommerce/internal/order/domain"
	ordermem "github.com/wyfcoding/ecommerce/internal/order/infrastructure/persistence/memory"
	ordermysql "github.com/wyfcoding/ecommerce/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/ecommerce/internal/order/interfaces/http"
	"github.com/wyfcoding/ecommerce/pkg/config"
	"github.com/wyfcoding/ecommerce/pkg/db"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
	"github.com/wyfcoding/ecommerce/pkg/middleware"
	"github.com/wyfcoding/ecommerce/pkg/mq"
)

// orderPlacer 结账上下文到订单上下文的适配器
type orderPlacer struct {
	orders *orderapp.OrderService
}

func (p *orderPlacer) PlaceOrder(ctx context.Context, input checkoutapp.PlaceOrderInput) (string, error) {
	items := make([]orderapp.OrderItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, orderapp.OrderItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	order, err := p.orders.Create(ctx, orderapp.CreateOrderCommand{
		UserID:         input.UserID,
		Items:          items,
		Subtotal:       input.Quote.Subtotal,
		ShippingFee:    input.Quote.Shipping,
		Tax:            input.Quote.Tax,
		Total:          input.Quote.Total,
		ShippingMethod: input.ShippingMethod,
		Recipient:      input.Shipping.FirstName + " " + input.Shipping.LastName,
		Address:        input.Shipping.Address,
		City:           input.Shipping.City,
		State:          input.Shipping.State,
		ZipCode:        input.Shipping.ZipCode,
		Country:        input.Shipping.Country,
	})
	if err != nil {
		return "", err
	}
	return order.OrderNumber, nil
}

func main() {
	// 1. 解析命令行参数
	configPath := flag.String("config", "configs/storefront/config.toml", "path to config file")
	flag.Parse()

	// 2. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 3. 初始化日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	logger.Info(ctx, "Starting storefront service",
		"version", cfg.Version, "environment", cfg.Environment)

	// 4. 初始化指标
	var m *metrics.Metrics
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName)
		if err := m.Register(); err != nil {
			logger.Error(ctx, "Failed to register metrics", "error", err)
			os.Exit(1)
		}
		metricsSrv = metrics.Serve(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 5. 事件发布链：进程内总线 -> Kafka（未配置 broker 时仅落日志）
	var producer *mq.KafkaProducer
	var next cartmsg.EventPublisherChain
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Error(ctx, "Failed to create Kafka producer", "error", err)
			os.Exit(1)
		}
		next = cartmsg.NewKafkaEventPublisher(producer)
	} else {
		next = cartmsg.NewLogEventPublisher()
	}
	bus := cartmsg.NewBus(next)
	if m != nil {
		subscribeMetrics(bus, m)
	}

	// 6. 仓储：目录 / 购物车 / 结账会话走内存，订单在配置 DSN 时归档到 MySQL
	productRepo := catalogmem.NewProductRepository()
	cartRepo := cartmem.NewCartRepository()
	sessionRepo := checkoutmem.NewSessionRepository()

	var orderRepo orderdomain.OrderRepository
	if cfg.Database.DSN != "" {
		gormDB, err := db.Init(db.Config{
			DSN:                cfg.Database.DSN,
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			LogEnabled:         cfg.Database.LogEnabled,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		})
		if err != nil {
			logger.Error(ctx, "Failed to init database", "error", err)
			os.Exit(1)
		}
		if err := gormDB.AutoMigrate(&orderdomain.Order{}, &orderdomain.OrderItem{}); err != nil {
			logger.Error(ctx, "Failed to migrate database", "error", err)
			os.Exit(1)
		}
		orderRepo = ordermysql.NewOrderRepository(gormDB)
	} else {
		logger.Warn(ctx, "Database DSN not configured, orders kept in memory")
		orderRepo = ordermem.NewOrderRepository()
	}

	// 7. 应用服务
	catalogService := catalogapp.NewCatalogQueryService(productRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo, bus)
	orderService := orderapp.NewOrderService(orderRepo, bus)
	gateway := checkoutpay.NewSimulatedGateway(
		time.Duration(cfg.Checkout.PaymentDelayMs)*time.Millisecond,
		cfg.Checkout.PaymentFailureRate,
	)
	checkoutService := checkoutapp.NewCheckoutService(
		sessionRepo, cartRepo, gateway, &orderPlacer{orders: orderService}, bus,
	)
	dashboardService := dashboardapp.NewDashboardService(orderRepo, productRepo)

	// 8. HTTP 服务
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinCORSMiddleware(),
	)
	if cfg.HTTP.RateLimitTokens > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitTokens, cfg.HTTP.RateLimitRefill)
		engine.Use(middleware.GinRateLimitMiddleware(limiter))
	}
	if m != nil {
		engine.Use(func(c *gin.Context) {
			start := time.Now()
			c.Next()
			m.HTTPRequestsTotal.Inc()
			m.HTTPRequestDuration.Observe(time.Since(start).Seconds())
		})
	}

	root := engine.Group("")
	cataloghttp.NewCatalogHandler(catalogService).RegisterRoutes(root)
	carthttp.NewCartHandler(cartService).RegisterRoutes(root)
	checkouthttp.NewCheckoutHandler(checkoutService).RegisterRoutes(root)
	orderhttp.NewOrderHandler(orderService).RegisterRoutes(root)
	dashboardhttp.NewDashboardHandler(dashboardService).RegisterRoutes(root)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down storefront service")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Metrics server shutdown failed", "error", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error(ctx, "Kafka producer close failed", "error", err)
		}
	}
	logger.Info(ctx, "Storefront service stopped")
}

// subscribeMetrics 把领域事件映射到指标
func subscribeMetrics(bus *cartmsg.Bus, m *metrics.Metrics) {
	mutation := func(ctx context.Context, key string, event any) {
		m.CartMutationsTotal.Inc()
	}
	bus.Subscribe(cartdomain.TopicCartItemAdded, mutation)
	bus.Subscribe(cartdomain.TopicCartItemRemoved, mutation)
	bus.Subscribe(cartdomain.TopicCartQuantityUpdated, mutation)
	bus.Subscribe(cartdomain.TopicCartCleared, mutation)

	bus.Subscribe(checkoutdomain.TopicCheckoutStarted, func(ctx context.Context, key string, event any) {
		m.CheckoutSessionsActive.Inc()
	})
	bus.Subscribe(checkoutdomain.TopicOrderSubmitted, func(ctx context.Context, key string, event any) {
		m.CheckoutSessionsActive.Dec()
		m.OrdersTotal.Inc()
	})
	bus.Subscribe(checkoutdomain.TopicOrderSubmissionFailed, func(ctx context.Context, key string, event any) {
		m.PaymentFailuresTotal.Inc()
	})
}
