package kafka

import (
	"context"

	"payment-preconfirm/internal/models"
)

// Producer определяет интерфейс для отправки сообщений в Kafka
type Producer interface {
	// SendPreconfirmEvent публикует сигнал о завершении проверки (ключ - payment_id)
	SendPreconfirmEvent(event *models.KafkaPreconfirmEvent) error

	Close() error
}

// Consumer определяет интерфейс чтения сигналов о завершении проверки
type Consumer interface {
	// Start читает топик до отмены ctx
	Start(ctx context.Context) error

	Close() error
}

// EventHandler обрабатывает одно событие из топика
type EventHandler func(ctx context.Context, event *models.KafkaPreconfirmEvent) error
