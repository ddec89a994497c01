package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkiryanov/orderprocessing/internal/db"
	"github.com/nkiryanov/orderprocessing/internal/handlers"
	"github.com/nkiryanov/orderprocessing/internal/logger"
	"github.com/nkiryanov/orderprocessing/internal/repository/postgres"
	"github.com/nkiryanov/orderprocessing/internal/service/export"
	"github.com/nkiryanov/orderprocessing/internal/service/order"
	"github.com/nkiryanov/orderprocessing/internal/service/orderprocessor"
	"github.com/nkiryanov/orderprocessing/internal/service/remote"
)

type App struct {
	ListenAddr string
	Handler    http.Handler
	Processor  *orderprocessor.Processor

	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewApp(ctx context.Context, c *Config) (*App, error) {
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	storage := postgres.NewStorage(pool)

	processor := orderprocessor.New(
		storage.Order(),
		remote.NewClient(c.RemoteAddr, logger),
		export.New(c.ExportDir),
		logger,
	)
	orderService := order.NewService(storage.Order())

	return &App{
		ListenAddr: c.ListenAddr,
		Handler:    handlers.NewRouter(orderService, processor, logger),
		Processor:  processor,
		pool:       pool,
		logger:     logger,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (a *App) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    a.ListenAddr,
		Handler: a.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			a.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		a.logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	a.logger.Info("Starting server", "address", a.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}

func (a *App) Close() {
	a.pool.Close()
}
