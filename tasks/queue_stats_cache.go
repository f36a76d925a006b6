// File: tasks/queue_stats_cache.go
package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/service"
)

// QueueStatsCacheTask 负责定时刷新 Redis 中的审核看板计数快照。
// 看板读路径优先命中快照，本任务保证快照的新鲜度上界就是刷新周期。
type QueueStatsCacheTask struct {
	queueSvc service.ModerationQueueService
	cron     *cron.Cron
	logger   *core.ZapLogger
}

// NewQueueStatsCacheTask 初始化并启动看板计数快照的定时任务。
// - queueSvc: 审核队列服务，承载重算与回写逻辑。
// - logger: ZapLogger 实例。
func NewQueueStatsCacheTask(queueSvc service.ModerationQueueService, logger *core.ZapLogger) *QueueStatsCacheTask {
	cronV3 := cron.New() // 默认分钟级精度

	task := &QueueStatsCacheTask{
		queueSvc: queueSvc,
		cron:     cronV3,
		logger:   logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *QueueStatsCacheTask) startCronJob() {
	schedule := constant.QueueStatsCronSpec
	t.logger.Info("准备启动审核看板计数刷新定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("审核看板计数刷新任务开始执行...")
		startTime := time.Now()
		// 单次执行只是几条 COUNT 加一次缓存写入，1 分钟超时足够。
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := t.queueSvc.RefreshQueueStats(ctx); err != nil {
			// 刷新失败不致命：旧快照在 TTL 内仍可用，读路径也能回源。
			t.logger.Error("刷新审核看板计数快照失败", zap.Error(err))
		}

		duration := time.Since(startTime)
		t.logger.Info("审核看板计数刷新任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加审核看板计数刷新 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("审核看板计数刷新定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// Stop 优雅地停止 cron 调度器。
func (t *QueueStatsCacheTask) Stop() context.Context {
	t.logger.Info("正在停止审核看板计数刷新定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("审核看板计数刷新定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
