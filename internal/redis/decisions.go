package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"payment-preconfirm/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func decisionKey(paymentID string) string {
	return fmt.Sprintf("preconfirm:%s:decision", paymentID)
}

// SaveDecision кэширует итог проверки платежа
func (c *Client) SaveDecision(ctx context.Context, paymentID string, outcome *models.DecisionOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	return c.rdb.Set(ctx, decisionKey(paymentID), data, c.decisionTTL).Err()
}

// GetDecision получает кэшированный итог проверки платежа
func (c *Client) GetDecision(ctx context.Context, paymentID string) (*models.DecisionOutcome, error) {
	data, err := c.rdb.Get(ctx, decisionKey(paymentID)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	var outcome models.DecisionOutcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	return &outcome, nil
}
