package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"payment-preconfirm/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

const (
	decisionStatsPrefix = "preconfirm_stats:decision:"
	triggerStatsPrefix  = "preconfirm_stats:trigger:"
	escalatedUsersKey   = "fraud:escalated_users"
)

// IncrementDecisionStats увеличивает счетчик решений
func (c *Client) IncrementDecisionStats(ctx context.Context, decision models.Decision) error {
	return c.rdb.Incr(ctx, decisionStatsPrefix+string(decision)).Err()
}

// IncrementTriggerStats увеличивает счетчики триггеров одним pipeline
func (c *Client) IncrementTriggerStats(ctx context.Context, triggers []string) error {
	if len(triggers) == 0 {
		return nil
	}
	pipe := c.rdb.Pipeline()
	for _, trigger := range triggers {
		pipe.Incr(ctx, triggerStatsPrefix+trigger)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// IncrementUserDailyCount увеличивает счетчик проверок пользователя за день
func (c *Client) IncrementUserDailyCount(ctx context.Context, userID string) (int64, error) {
	key := fmt.Sprintf("limits:user:%s:daily:count", userID)
	pipe := c.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MarkEscalated добавляет пользователя в множество переданных во фрод-команду
func (c *Client) MarkEscalated(ctx context.Context, userID string) error {
	return c.rdb.SAdd(ctx, escalatedUsersKey, userID).Err()
}

// IsEscalated проверяет, передавался ли пользователь во фрод-команду
func (c *Client) IsEscalated(ctx context.Context, userID string) (bool, error) {
	return c.rdb.SIsMember(ctx, escalatedUsersKey, userID).Result()
}

// GetDecisionStats возвращает счетчики решений и триггеров.
// Отсутствующие ключи возвращаются как 0.
func (c *Client) GetDecisionStats(ctx context.Context) (*models.DecisionStats, error) {
	decisions := []models.Decision{
		models.DecisionAllow,
		models.DecisionStepUp,
		models.DecisionBlock,
		models.DecisionRequireMakerChecker,
	}

	keys := make([]string, 0, len(decisions)+len(models.TriggerNames))
	for _, d := range decisions {
		keys = append(keys, decisionStatsPrefix+string(d))
	}
	for _, trigger := range models.TriggerNames {
		keys = append(keys, triggerStatsPrefix+trigger)
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	escalated, err := c.rdb.SCard(ctx, escalatedUsersKey).Result()
	if err != nil && err != redisv9.Nil {
		return nil, fmt.Errorf("failed to get escalated users: %w", err)
	}

	stats := &models.DecisionStats{
		Decisions:      make(map[string]int64, len(decisions)),
		Triggers:       make(map[string]int64, len(models.TriggerNames)),
		EscalatedUsers: escalated,
	}
	for i, key := range keys {
		count := parseCount(values[i])
		if strings.HasPrefix(key, decisionStatsPrefix) {
			stats.Decisions[strings.TrimPrefix(key, decisionStatsPrefix)] = count
		} else {
			stats.Triggers[strings.TrimPrefix(key, triggerStatsPrefix)] = count
		}
	}
	return stats, nil
}

func parseCount(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
