package preconfirm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"payment-preconfirm/config"
	_ "payment-preconfirm/docs" // Swagger docs
	"payment-preconfirm/internal/api/rest"
	"payment-preconfirm/internal/grpc"
)

// StartPreconfirmService запускает REST и gRPC интерфейсы предварительной проверки платежей
func StartPreconfirmService() {
	cfg := config.Load()

	// Инициализация зависимостей
	deps, err := InitializeDependencies(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	// Настройка REST API
	handlers := rest.NewHandlers(rest.HandlerDeps{
		Preconfirm:     deps.PreconfirmService,
		Approvals:      deps.ApprovalService,
		Documents:      deps.DocumentService,
		Catalog:        deps.Catalog,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	})
	router := rest.SetupRouter(handlers)

	// Запуск HTTP сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: router,
	}

	go func() {
		log.Printf("Payment Preconfirm Service starting on port %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Запуск gRPC сервера в отдельной горутине
	grpcServer := grpc.NewServer(grpc.NewPreconfirmGRPCServer(deps.PreconfirmService, deps.ApprovalService, deps.Catalog))
	go func() {
		log.Printf("Starting gRPC server on port %d...", cfg.Server.GRPCPort)
		if err := grpc.StartGRPCServer(cfg, grpcServer); err != nil {
			log.Fatalf("Failed to start gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	grpcServer.GracefulStop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
