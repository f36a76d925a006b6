package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// QueueStatsCache 定义了审核看板计数快照的缓存操作接口。
// - 目标: 看板计数只需近似值，走 Redis 避免每次打开看板都对博文表做多次 COUNT。
// - 快照由定时任务周期刷新，读路径未命中时由服务层回源重算并写回。
type QueueStatsCache interface {
	// GetQueueStats 读取计数快照。
	// - 缓存未命中时返回 myErrors.ErrCacheMiss，上层服务需要处理回源。
	GetQueueStats(ctx context.Context) (*vo.QueueStatsVO, error)

	// SetQueueStats 写入计数快照并设置过期时间。
	SetQueueStats(ctx context.Context, stats *vo.QueueStatsVO) error
}

// queueStatsCacheImpl 是 QueueStatsCache 接口的 Redis 实现。
type queueStatsCacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewQueueStatsCache 是 queueStatsCacheImpl 的构造函数。
func NewQueueStatsCache(redisClient *redis.Client, logger *core.ZapLogger) QueueStatsCache {
	return &queueStatsCacheImpl{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetQueueStats 实现计数快照的读取。
func (c *queueStatsCacheImpl) GetQueueStats(ctx context.Context) (*vo.QueueStatsVO, error) {
	data, err := c.redisClient.Get(ctx, constant.ModerationQueueStatsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErrors.ErrCacheMiss
		}
		c.logger.Error("读取审核看板计数快照失败", zap.Error(err))
		return nil, fmt.Errorf("读取审核看板计数快照失败: %w", err)
	}

	var stats vo.QueueStatsVO
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		// 快照损坏按未命中处理，让上层回源重算覆盖。
		c.logger.Error("反序列化审核看板计数快照失败", zap.Error(err))
		return nil, myErrors.ErrCacheMiss
	}
	return &stats, nil
}

// SetQueueStats 实现计数快照的写入。
func (c *queueStatsCacheImpl) SetQueueStats(ctx context.Context, stats *vo.QueueStatsVO) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("序列化审核看板计数快照失败: %w", err)
	}
	err = c.redisClient.Set(ctx, constant.ModerationQueueStatsKey, data, constant.ModerationQueueStatsTTL).Err()
	if err != nil {
		c.logger.Error("写入审核看板计数快照失败", zap.Error(err))
		return fmt.Errorf("写入审核看板计数快照失败: %w", err)
	}
	return nil
}
