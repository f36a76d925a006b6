// dependencies/redis.go
package dependencies

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
)

// InitRedis 初始化 Redis 客户端并验证连通性
func InitRedis(cfg *appConfig.BlogConfig, logger *core.ZapLogger) (*redis.Client, error) {
	redisCfg := cfg.RedisConfig
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis 地址 (redisConfig.address) 未配置")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("无法连接到 Redis", zap.Error(err), zap.String("address", redisCfg.Address))
		return nil, fmt.Errorf("无法连接到 Redis: %w", err)
	}

	logger.Info("成功初始化 Redis 连接", zap.String("address", redisCfg.Address), zap.Int("db", redisCfg.DB))
	return client, nil
}
