package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shaiso/Flowdoc/internal/api"
	"github.com/shaiso/Flowdoc/internal/mq"
	"github.com/shaiso/Flowdoc/internal/repo"
	"github.com/shaiso/Flowdoc/internal/telemetry"
)

var (
	startTime = time.Now()
	reqTotal  = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowdoc_api_http_requests_total",
		Help: "Total HTTP requests handled by flowdoc_api",
	})
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting flowdoc-api")

	// Подключаемся к базе данных
	pool, err := repo.NewPool(context.Background())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Подключаемся к RabbitMQ. Брокер опционален: без него сервис
	// работает, доменные события не публикуются.
	var publisher *mq.Publisher
	if conn, err := mq.NewConnection(mq.URL(), logger); err != nil {
		logger.Warn("RabbitMQ unavailable, events disabled", "error", err)
	} else {
		defer conn.Close()
		if err := mq.SetupTopology(conn); err != nil {
			logger.Error("failed to setup mq topology", "error", err)
			os.Exit(1)
		}
		publisher = mq.NewPublisher(conn, logger)
	}

	// Создаём репозитории
	specRepo := repo.NewSpecRepo(pool)
	versionRepo := repo.NewVersionRepo(pool)
	graphRepo := repo.NewGraphRepo(pool, logger)
	userRepo := repo.NewUserRepo(pool)

	// Создаём API handler
	handler := api.NewHandler(api.Config{
		SpecRepo:    specRepo,
		VersionRepo: versionRepo,
		GraphRepo:   graphRepo,
		UserRepo:    userRepo,
		Publisher:   publisher,
		Logger:      logger,
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		reqTotal.Inc()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Регистрируем API маршруты
	handler.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("API_PORT"); v != "" {
		addr = ":" + v
	}

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
