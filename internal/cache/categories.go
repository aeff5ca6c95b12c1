package cache

import (
	"context"
	"time"

	"github.com/shopsync/internal/constants"
)

// ActiveCategoriesTTL 活跃分类列表缓存时长
const ActiveCategoriesTTL = 5 * time.Minute

// GetActiveCategories 读取活跃分类缓存，dest 需为切片指针
func GetActiveCategories(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, constants.CacheKeyActiveCategories, dest)
}

// SetActiveCategories 写入活跃分类缓存
func SetActiveCategories(ctx context.Context, value interface{}) error {
	return SetJSON(ctx, constants.CacheKeyActiveCategories, value, ActiveCategoriesTTL)
}

// InvalidateActiveCategories 同步或分类变更后清理缓存
func InvalidateActiveCategories(ctx context.Context) error {
	return Del(ctx, constants.CacheKeyActiveCategories)
}
