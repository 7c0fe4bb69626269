package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/handmade-next/internal/models"
)

const defaultProductTTL = 5 * time.Minute

// ProductCache 商品详情读缓存（Redis 未启用时所有操作为空操作）
type ProductCache struct {
	ttl time.Duration
}

// NewProductCache 创建商品缓存
func NewProductCache(ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultProductTTL
	}
	return &ProductCache{ttl: ttl}
}

// TTL 缓存有效期
func (c *ProductCache) TTL() time.Duration {
	if c == nil || c.ttl <= 0 {
		return defaultProductTTL
	}
	return c.ttl
}

// Get 读取商品详情
func (c *ProductCache) Get(ctx context.Context, productID uint) (*models.Product, bool, error) {
	var product models.Product
	hit, err := GetJSON(ctx, productKey(productID), &product)
	if err != nil || !hit {
		return nil, false, err
	}
	return &product, true, nil
}

// Set 写入商品详情
func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	if product == nil || product.ID == 0 {
		return nil
	}
	return SetJSON(ctx, productKey(product.ID), product, c.TTL())
}

// Invalidate 删除商品详情缓存
func (c *ProductCache) Invalidate(ctx context.Context, productID uint) error {
	return Del(ctx, productKey(productID))
}

func productKey(productID uint) string {
	return fmt.Sprintf("product:detail:%d", productID)
}
