package redis

import (
	"context"
	"fmt"
)

// ClearPreconfirmData очищает кэш решений и счетчики (множество эскалаций сохраняется)
func (c *Client) ClearPreconfirmData(ctx context.Context) error {
	patterns := []string{
		"preconfirm:*",
		"preconfirm_stats:*",
		"limits:user:*",
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			c.rdb.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to clear pattern %s: %w", pattern, err)
		}
	}

	return nil
}
