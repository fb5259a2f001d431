package cache

import (
	"context"
	"encoding/json"
	"marketplace-settlement/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeRulesKey = "commission:rules:active"

// RuleCache keeps the active commission-rule set in redis so resolution does
// not hit the database per invocation. A nil *RuleCache is a valid no-op
// cache; rule sets are expected to stay small (tens of rows).
type RuleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRuleCache(client *redis.Client, ttl time.Duration) *RuleCache {
	return &RuleCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RuleCache) Get(ctx context.Context) ([]*model.CommissionRule, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, activeRulesKey).Bytes()
	if err != nil {
		return nil, false
	}

	var rules []*model.CommissionRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, false
	}

	return rules, true
}

func (c *RuleCache) Set(ctx context.Context, rules []*model.CommissionRule) {
	if c == nil {
		return
	}

	data, err := json.Marshal(rules)
	if err != nil {
		return
	}

	c.client.Set(ctx, activeRulesKey, data, c.ttl)
}

func (c *RuleCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	c.client.Del(ctx, activeRulesKey)
}
