package notification

import (
	"errors"
	"fmt"
	"log"

	"payment-preconfirm/config"
	"payment-preconfirm/internal/kafka"
	"payment-preconfirm/internal/redis"
	"payment-preconfirm/internal/services"
)

// Dependencies содержит все зависимости для notification service
type Dependencies struct {
	RedisClient         *redis.Client
	NotificationService services.NotificationService
	KafkaConsumer       kafka.Consumer
}

// InitializeDependencies инициализирует все зависимости для notification service
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	// Инициализация Redis
	log.Println("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Redis connection established")

	notificationService := services.NewNotificationService(redisClient)

	// Инициализация Kafka Consumer
	log.Println("Connecting to Kafka...")
	consumer, err := kafka.NewConsumer(cfg, notificationService.HandlePreconfirmEvent)
	if err != nil {
		redisClient.Close()
		return nil, err
	}
	log.Println("Kafka consumer connected successfully")

	return &Dependencies{
		RedisClient:         redisClient,
		NotificationService: notificationService,
		KafkaConsumer:       consumer,
	}, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	var errs []error
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka consumer: %w", err))
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
