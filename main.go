package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/supakorn-kn/book-catalog/apis"
	booksAPI "github.com/supakorn-kn/book-catalog/apis/books"
	"github.com/supakorn-kn/book-catalog/env"
	"github.com/supakorn-kn/book-catalog/logging"
	"github.com/supakorn-kn/book-catalog/metrics"
	"github.com/supakorn-kn/book-catalog/models"
	booksModel "github.com/supakorn-kn/book-catalog/models/books"
	"github.com/supakorn-kn/book-catalog/mongodb"
	"github.com/supakorn-kn/book-catalog/server"
	"go.uber.org/zap"
)

const (
	service        = "book-catalog"
	connectTimeout = 10 * time.Second
)

func main() {
	os.Exit(start())
}

// start returns the process exit code so deferred flushes run before os.Exit.
func start() int {

	cfg, err := env.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		return 1
	}

	log, err := logging.New(service, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create logger failed:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}

	return 0
}

func run(cfg *env.Env, log *zap.Logger) error {

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := apis.RouterDeps{Log: log, Service: service}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		deps.Registry = reg
		deps.Metrics = metrics.NewMetrics(reg)
	}

	gin.SetMode(cfg.Server.GinMode)

	api := booksAPI.NewBooksAPI(store, deps.Metrics, log)
	router := apis.NewRouter(api, deps)

	return server.Run(ctx, cfg.Server.Addr(), router, log)
}

func openStore(ctx context.Context, cfg *env.Env, log *zap.Logger) (models.Store, func(), error) {

	if cfg.Store.Backend != env.MongoDBBackend {
		log.Info("using in-memory catalog")
		return models.NewSeededMemoryModel(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := mongodb.InitConnection(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("create MongoDB connection: %w", err)
	}

	closeConn := func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			log.Warn("disconnect MongoDB failed", zap.Error(err))
		}
	}

	model, err := booksModel.NewBooksModel(connectCtx, conn)
	if err != nil {
		closeConn()
		return nil, nil, fmt.Errorf("create books model: %w", err)
	}

	log.Info("using MongoDB catalog", zap.String("db", cfg.MongoDB.DB))
	return model, closeConn, nil
}
