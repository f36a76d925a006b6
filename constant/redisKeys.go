package constant

import "time"

// Redis Key 相关常量 (导出)
const (
	// ModerationQueueStatsKey 审核看板计数快照的 Key。
	// 存储一份 JSON 序列化的各状态桶计数（待审核/已发布/带覆盖层）。
	// 该快照由定时任务刷新，读路径未命中时回源数据库重算，
	// 它只是近似值，不与并发写事务一致。
	// Redis 类型: String
	ModerationQueueStatsKey = "moderation_queue_stats"

	// ModerationQueueStatsTTL 计数快照的过期时间。
	// 略大于刷新周期，保证刷新任务短暂失败时看板仍有数据，
	// 又不至于长期陈旧。
	ModerationQueueStatsTTL = 15 * time.Minute
)
