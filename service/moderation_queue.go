package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// QueuePartition 审核队列的分区
type QueuePartition string

const (
	// PartitionSubmissions 初次投稿分区（待审核状态的博文）
	PartitionSubmissions QueuePartition = "submissions"
	// PartitionRevisions 修订稿分区（挂有覆盖层的已发布博文）
	PartitionRevisions QueuePartition = "revisions"
)

// ModerationQueueService 定义了审核队列与看板计数的业务逻辑接口。
// - 纯读路径，不做任何状态流转。
// - 队列与计数都是快照读，不与并发写事务一致，调用方需容忍短暂陈旧。
type ModerationQueueService interface {
	// GetQueue 分页获取指定分区的审核队列，按先到先审排序。
	// - 条目附带批量解析出的作者信息。
	GetQueue(ctx context.Context, caller auth.Identity, partition QueuePartition, offset, limit int) (*vo.ModerationQueueVO, error)

	// GetQueueStats 获取看板计数快照。
	// - 优先读缓存；未命中时回源数据库重算并写回。
	GetQueueStats(ctx context.Context, caller auth.Identity) (*vo.QueueStatsVO, error)

	// RefreshQueueStats 重算看板计数并覆盖缓存快照。
	// - 由定时任务周期调用，请求路径不依赖它。
	RefreshQueueStats(ctx context.Context) (*vo.QueueStatsVO, error)
}

// moderationQueueService 是 ModerationQueueService 接口的具体实现。
type moderationQueueService struct {
	postAdminRepo mysql.PostAdminRepository
	statsCache    redis.QueueStatsCache
	authorSvc     AuthorService
	logger        *core.ZapLogger
}

// NewModerationQueueService 是 moderationQueueService 的构造函数。
func NewModerationQueueService(
	postAdminRepo mysql.PostAdminRepository,
	statsCache redis.QueueStatsCache,
	authorSvc AuthorService,
	logger *core.ZapLogger,
) ModerationQueueService {
	return &moderationQueueService{
		postAdminRepo: postAdminRepo,
		statsCache:    statsCache,
		authorSvc:     authorSvc,
		logger:        logger,
	}
}

// GetQueue 实现审核队列的分区查询。
func (s *moderationQueueService) GetQueue(ctx context.Context, caller auth.Identity, partition QueuePartition, offset, limit int) (*vo.ModerationQueueVO, error) {
	if !caller.Can(auth.CapReviewContent) {
		return nil, myErrors.ErrForbidden
	}

	var (
		posts []*entities.Post
		total int64
		err   error
		kind  string
	)
	switch partition {
	case PartitionSubmissions:
		kind = "submission"
		posts, total, err = s.postAdminRepo.ListByStatus(ctx, enums.Pending, offset, limit)
	case PartitionRevisions:
		kind = "revision"
		posts, total, err = s.postAdminRepo.ListPublishedWithOverlay(ctx, offset, limit)
	default:
		return nil, fmt.Errorf("%w: 未知的队列分区 %q", myErrors.ErrValidation, partition)
	}
	if err != nil {
		return nil, err
	}

	// 批量解析作者信息，避免逐条查询。
	authors, err := s.authorSvc.ResolveAuthors(ctx, posts)
	if err != nil {
		return nil, err
	}

	items := make([]*vo.ModerationQueueItemVO, 0, len(posts))
	for _, p := range posts {
		submittedAt := p.CreatedAt
		if partition == PartitionRevisions {
			// 覆盖层没有独立的提交时间列，用博文更新时间近似。
			submittedAt = p.UpdatedAt
		}
		items = append(items, &vo.ModerationQueueItemVO{
			Kind:        kind,
			Post:        vo.MapPostToPostResponseVO(p),
			Author:      authors[p.AuthorID],
			SubmittedAt: submittedAt,
		})
	}
	return &vo.ModerationQueueVO{Items: items, Total: total}, nil
}

// GetQueueStats 实现看板计数读取。
func (s *moderationQueueService) GetQueueStats(ctx context.Context, caller auth.Identity) (*vo.QueueStatsVO, error) {
	if !caller.Can(auth.CapReviewContent) {
		return nil, myErrors.ErrForbidden
	}

	stats, err := s.statsCache.GetQueueStats(ctx)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		// Redis 故障时降级回源，看板可用性优先。
		s.logger.Warn("读取看板计数缓存失败，回源重算", zap.Error(err))
	}
	return s.RefreshQueueStats(ctx)
}

// RefreshQueueStats 实现看板计数的重算与回写。
func (s *moderationQueueService) RefreshQueueStats(ctx context.Context) (*vo.QueueStatsVO, error) {
	counts, err := s.postAdminRepo.CountModerationBuckets(ctx)
	if err != nil {
		return nil, err
	}
	stats := &vo.QueueStatsVO{
		PendingSubmissions: counts.PendingSubmissions,
		PendingRevisions:   counts.PendingRevisions,
		Published:          counts.Published,
		Rejected:           counts.Rejected,
		RefreshedAt:        time.Now(),
	}
	if cacheErr := s.statsCache.SetQueueStats(ctx, stats); cacheErr != nil {
		// 写缓存失败不影响本次结果，下个刷新周期会重试。
		s.logger.Warn("回写看板计数缓存失败", zap.Error(cacheErr))
	}
	return stats, nil
}
