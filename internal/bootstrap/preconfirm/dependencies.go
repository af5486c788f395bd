package preconfirm

import (
	"errors"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"payment-preconfirm/config"
	"payment-preconfirm/internal/blobstore"
	"payment-preconfirm/internal/forms"
	"payment-preconfirm/internal/fraud"
	"payment-preconfirm/internal/kafka"
	"payment-preconfirm/internal/metrics"
	"payment-preconfirm/internal/redis"
	"payment-preconfirm/internal/services"
	"payment-preconfirm/internal/storage"
	"payment-preconfirm/internal/storage/sqlite"
)

// Dependencies содержит все зависимости для preconfirm service
type Dependencies struct {
	StorageConn       *sqlite.SQLiteStorage
	StorageRepo       storage.PreconfirmRepository
	RedisClient       *redis.Client
	KafkaProducer     kafka.Producer
	Catalog           *forms.Catalog
	PreconfirmService services.PreconfirmService
	ApprovalService   services.ApprovalService
	DocumentService   services.DocumentService
}

// InitializeDependencies инициализирует все зависимости для preconfirm service.
// Redis и Kafka необязательны: без них решения сохраняются, но не кэшируются и не публикуются.
func InitializeDependencies(cfg *config.Config, reg prometheus.Registerer) (*Dependencies, error) {
	// Инициализация SQLite
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	storageRepo := sqlite.NewRepository(storageConn)

	blobs, err := blobstore.NewFileStore(cfg.Storage.DocumentsDir)
	if err != nil {
		storageConn.Close()
		return nil, err
	}

	deps := &Dependencies{
		StorageConn: storageConn,
		StorageRepo: storageRepo,
		Catalog:     forms.NewCatalog(),
	}

	serviceDeps := services.PreconfirmDeps{
		Repo:      storageRepo,
		Evaluator: fraud.NewTriggerEvaluator(fraud.ThresholdsFromConfig(cfg.Risk)),
		Resolver:  fraud.NewPolicyResolver(),
		Metrics:   metrics.New(reg),
	}

	// Инициализация Redis
	log.Println("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis not available, decisions will not be cached: %v", err)
	} else {
		log.Println("Redis connection established")
		deps.RedisClient = redisClient
		serviceDeps.Cache = redisClient
	}

	// Инициализация Kafka Producer
	log.Println("Connecting to Kafka...")
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		log.Printf("Warning: Kafka not available, completion events will not be published: %v", err)
	} else {
		log.Println("Kafka producer connected successfully")
		deps.KafkaProducer = producer
		serviceDeps.Producer = producer
	}

	deps.PreconfirmService = services.NewPreconfirmService(serviceDeps)
	deps.ApprovalService = services.NewApprovalService(storageRepo, serviceDeps.Metrics)
	deps.DocumentService = services.NewDocumentService(storageRepo, blobs, serviceDeps.Metrics)

	return deps, nil
}

// Close закрывает все соединения. Сбой одного не мешает закрыть остальные.
func (d *Dependencies) Close() error {
	var errs []error
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if d.StorageConn != nil {
		if err := d.StorageConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
