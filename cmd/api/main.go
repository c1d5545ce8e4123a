package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"marketplace-backend/internal/config"
	"marketplace-backend/internal/db"
	"marketplace-backend/internal/httpserver"
	cartrepo "marketplace-backend/internal/repository/cart"
	customerrepo "marketplace-backend/internal/repository/customer"
	orderrepo "marketplace-backend/internal/repository/order"
	productrepo "marketplace-backend/internal/repository/product"
	shoprepo "marketplace-backend/internal/repository/shop"
	cartsvc "marketplace-backend/internal/service/cart"
	ordersvc "marketplace-backend/internal/service/order"
	"marketplace-backend/internal/service/orderquery"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	shopRepo := shoprepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, productRepo, logger)
	orderQueries := orderquery.New(orderRepo, customerRepo, shopRepo, productRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		OrderSvc:    orderService,
		OrderQuery:  orderQueries,
		ProductDir:  productRepo,
		CustomerDir: customerRepo,
		ShopDir:     shopRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
