package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"knowledgehub/internal/model"
)

// ArticleCache keeps recently read articles in Redis. Writers invalidate
// by id; entries otherwise age out with the TTL.
type ArticleCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewArticleCache(client *redisv9.Client, ttl time.Duration) *ArticleCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &ArticleCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ArticleCache) Get(ctx context.Context, id uint) (*model.Article, bool, error) {
	raw, err := c.client.Get(ctx, c.articleKey(id)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get article failed: %w", err)
	}

	var article model.Article
	if err := json.Unmarshal([]byte(raw), &article); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached article failed: %w", err)
	}
	return &article, true, nil
}

func (c *ArticleCache) Set(ctx context.Context, article *model.Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.articleKey(article.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set article failed: %w", err)
	}
	return nil
}

func (c *ArticleCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, c.articleKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete article failed: %w", err)
	}
	return nil
}

func (c *ArticleCache) articleKey(id uint) string {
	return fmt.Sprintf("article:%d", id)
}
