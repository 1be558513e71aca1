package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	httpapi "github.com/vladislavdragonenkov/storefront/internal/http"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/payment"
	"github.com/vladislavdragonenkov/storefront/internal/service/webhook"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Run собирает зависимости и запускает HTTP API вместе с ops-сервером.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	// Хранилище: PostgreSQL при заданном DSN, иначе in-memory для локальной
	// разработки.
	var (
		products domain.ProductRepository
		users    domain.UserRepository
		payments domain.PaymentRepository
		store    *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		products = postgres.NewProductRepository(store)
		users = postgres.NewUserRepository(store)
		payments = postgres.NewPaymentRepository(store)
		logger.Info("postgres storage initialized")
	} else {
		products = memory.NewProductRepository()
		users = memory.NewUserRepository()
		payments = memory.NewPaymentRepository()
		logger.Info("in-memory storage initialized")
	}

	checkoutMetrics := metrics.NewCheckoutMetrics()
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	// Стратегия создания заказа выбирается один раз при сборке: боевой клиент
	// провайдера при полных учётных данных, иначе demo-симуляция.
	var creator domain.OrderCreator
	if cfg.PayOS.Configured() {
		creator = payment.NewClient(cfg.PayOS, logger.WithField("component", "payos-client"))
		logger.Info("payment provider configured, live checkout enabled")
	} else {
		creator = payment.NewDemoCreator(logger.WithField("component", "payment-demo"))
		logger.Warn("payment provider credentials missing, running in demo mode")
	}

	orchestrator := checkout.NewOrchestrator(
		creator, cfg.BaseURL,
		logger.WithField("component", "checkout"),
		checkout.WithMetrics(checkoutMetrics),
	)
	demoOrchestrator := checkout.NewOrchestrator(
		payment.NewDemoCreator(logger.WithField("component", "payment-demo")),
		cfg.BaseURL,
		logger.WithField("component", "checkout-demo"),
	)

	// Инициализация Kafka producer (опционально).
	var kafkaProducer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}

	receiverOpts := []webhook.Option{webhook.WithMetrics(checkoutMetrics)}
	if kafkaProducer != nil {
		receiverOpts = append(receiverOpts, webhook.WithProducer(kafkaProducer))
	}
	receiver := webhook.NewReceiver(
		payments,
		payment.NewSignatureVerifier(cfg.PayOS.ChecksumKey),
		logger.WithField("component", "webhook"),
		receiverOpts...,
	)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:   tokens,
		Auth:     httpapi.NewAuthHandler(users, tokens, logger.WithField("component", "auth-handler")),
		Products: httpapi.NewProductHandler(products, logger.WithField("component", "product-handler")),
		Cart:     httpapi.NewCartHandler(products, logger.WithField("component", "cart-handler")),
		Checkout: httpapi.NewCheckoutHandler(orchestrator, demoOrchestrator, logger.WithField("component", "checkout-handler")),
		Webhook:  httpapi.NewWebhookHandler(receiver, logger.WithField("component", "webhook-handler")),
		Logger:   logger.WithField("component", "http"),
	})

	healthHandler := healthcheck.NewHandler(version.String())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(checkCtx)
		}))
	}

	metricsSrv := startOpsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		closeKafka(kafkaProducer, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		closeKafka(kafkaProducer, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает служебный HTTP-сервер: метрики и health checks.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
