package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/IBM/sarama"

	"payment-preconfirm/config"
	"payment-preconfirm/internal/models"
)

type ConsumerImpl struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  EventHandler
}

func NewConsumer(cfg *config.Config, handler EventHandler) (Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	config.Version = sarama.V2_8_0_0

	consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	log.Println("Kafka consumer created successfully")
	return &ConsumerImpl{
		consumer: consumer,
		topic:    cfg.Kafka.PreconfirmTopic,
		handler:  handler,
	}, nil
}

func (c *ConsumerImpl) Start(ctx context.Context) error {
	topics := []string{c.topic}

	consumerHandler := &consumerGroupHandler{
		handler: c.handler,
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			if err := c.consumer.Consume(ctx, topics, consumerHandler); err != nil {
				log.Printf("Error from consumer: %v", err)
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case err := <-c.consumer.Errors():
				if err != nil {
					log.Printf("Consumer error: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	log.Println("Consumer context cancelled, shutting down...")
	wg.Wait()
	return c.consumer.Close()
}

func (c *ConsumerImpl) Close() error {
	return c.consumer.Close()
}

type consumerGroupHandler struct {
	handler EventHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			h.handleMessage(session.Context(), message)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage декодирует и передает событие обработчику.
// Битые сообщения и ошибки обработчика логируются; offset все равно фиксируется.
func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	event, err := decodeEvent(message.Value)
	if err != nil {
		log.Printf("Error unmarshaling message at offset %d: %v", message.Offset, err)
		return
	}

	if event.EventType != models.EventTypePreconfirmCompleted {
		log.Printf("Skipping event %s of type %s", event.EventID, event.EventType)
		return
	}

	if err := h.handler(ctx, event); err != nil {
		log.Printf("Error handling message: %v", err)
	}
}

func decodeEvent(data []byte) (*models.KafkaPreconfirmEvent, error) {
	var event models.KafkaPreconfirmEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if event.Data.PaymentID == "" {
		return nil, fmt.Errorf("event %s has no payment_id", event.EventID)
	}
	return &event, nil
}
