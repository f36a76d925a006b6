package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// RevisionService 定义了草稿覆盖层的业务逻辑接口。
// 覆盖层让已发布的博文在不下线的前提下接受修订：
// 作者提交的替换稿挂在详情记录上，对外内容保持不变，
// 审核通过后一次性替换对外内容，审核拒绝则整体丢弃。
type RevisionService interface {
	// SubmitRevision 为已发布的博文提交草稿覆盖层。
	// - 仅作者本人（或具备管理能力的调用者）可提交。
	// - 前置条件 status = 已发布，否则 ErrInvalidTransition。
	// - 覆盖层是整体替换稿：已有覆盖层时直接被新稿覆盖（后写胜出），
	//   不做两份待审稿的合并。
	SubmitRevision(ctx context.Context, caller auth.Identity, postID uint64, req *dto.SubmitRevisionRequest) (*vo.RevisionVO, error)

	// ApproveRevision 批准覆盖层：将覆盖层全部字段落为对外内容并清空覆盖层。
	// - status 保持已发布，published_at 不变（这是内容替换，不是重新发布）。
	// - 无覆盖层时返回 ErrNoPendingRevision。
	ApproveRevision(ctx context.Context, caller auth.Identity, postID uint64) error

	// RejectRevision 丢弃覆盖层，对外内容不受影响。
	// - 与初次投稿的拒绝不同，丢弃覆盖层不要求附原因。
	// - 无覆盖层时返回 ErrNoPendingRevision。
	RejectRevision(ctx context.Context, caller auth.Identity, postID uint64) error
}

// revisionService 是 RevisionService 接口的具体实现。
type revisionService struct {
	postRepo       mysql.PostRepository
	postAdminRepo  mysql.PostAdminRepository
	postDetailRepo mysql.PostDetailRepository
	slugAllocator  SlugAllocator
	analyzer       dependencies.ContentAnalyzer
	db             *gorm.DB
	kafkaSvc       *producer.KafkaProducer
	logger         *core.ZapLogger
}

// NewRevisionService 是 revisionService 的构造函数。
func NewRevisionService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	postAdminRepo mysql.PostAdminRepository,
	postDetailRepo mysql.PostDetailRepository,
	slugAllocator SlugAllocator,
	analyzer dependencies.ContentAnalyzer,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) RevisionService {
	return &revisionService{
		postRepo:       postRepo,
		postAdminRepo:  postAdminRepo,
		postDetailRepo: postDetailRepo,
		slugAllocator:  slugAllocator,
		analyzer:       analyzer,
		db:             db,
		kafkaSvc:       kafkaSvc,
		logger:         logger,
	}
}

// SubmitRevision 实现覆盖层的提交。
func (s *revisionService) SubmitRevision(ctx context.Context, caller auth.Identity, postID uint64, req *dto.SubmitRevisionRequest) (*vo.RevisionVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(post.AuthorID) && !caller.Can(auth.CapManageAnyPost) {
		return nil, myErrors.ErrForbidden
	}
	if post.Status != enums.Approved {
		return nil, fmt.Errorf("%w: 只有已发布的博文可以提交修订稿", myErrors.ErrInvalidTransition)
	}
	// 修订稿是完整替换稿，内容契约与投稿一致。
	if err := validateContentPayload(req.Title, req.Excerpt, req.Body, req.Category); err != nil {
		return nil, err
	}

	// 派生指标与 slug 在提交时就计算好，批准时直接落地，不再回头重算。
	wordCount, readTime := s.analyzer.Analyze(req.Body)
	slug := post.Slug
	if req.Title != post.Title {
		slug, err = s.slugAllocator.Allocate(ctx, req.Title, postID)
		if err != nil {
			return nil, err
		}
	}

	overlay := &entities.Revision{
		Title:           req.Title,
		Slug:            slug,
		Excerpt:         req.Excerpt,
		Body:            req.Body,
		Category:        req.Category,
		Tags:            req.Tags,
		FeaturedImage:   req.FeaturedImage,
		WordCount:       wordCount,
		ReadTimeMinutes: readTime,
		SubmittedAt:     time.Now(),
	}

	// 覆盖层写入与主表标记在同一事务内完成，状态前置条件在 WHERE 中原子生效。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, repoErr := s.postAdminRepo.TransitionStatus(ctx, tx, postID, enums.Approved, enums.Approved, map[string]interface{}{
			"has_draft_overlay": true,
		})
		if repoErr != nil {
			return repoErr
		}
		if rows == 0 {
			// 并发下刚被下架或删除。
			if _, getErr := s.postRepo.GetPostByID(ctx, postID); getErr != nil {
				return getErr
			}
			return fmt.Errorf("%w: 只有已发布的博文可以提交修订稿", myErrors.ErrInvalidTransition)
		}
		return s.postDetailRepo.SetDraftOverlay(ctx, tx, postID, overlay)
	})
	if err != nil {
		s.logger.Error("提交修订稿事务失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendRevisionPendingEvent(bgCtx, postID, overlay.SubmittedAt); kafkaErr != nil {
			s.logger.Error("发送修订稿待审事件失败", zap.Error(kafkaErr), zap.Uint64("postID", postID))
		}
	}()
	return vo.MapRevisionToVO(overlay), nil
}

// resolveOverlayConflict 将覆盖层流转的 RowsAffected=0 解释为具体错误。
func (s *revisionService) resolveOverlayConflict(ctx context.Context, postID uint64) error {
	post, getErr := s.postRepo.GetPostByID(ctx, postID)
	if getErr != nil {
		return getErr
	}
	if post.Status != enums.Approved {
		// 下架后的覆盖层处于休眠状态，重新发布前不接受审核操作。
		return fmt.Errorf("%w: 博文当前未发布", myErrors.ErrInvalidTransition)
	}
	return myErrors.ErrNoPendingRevision
}

// ApproveRevision 实现覆盖层的批准与落地。
func (s *revisionService) ApproveRevision(ctx context.Context, caller auth.Identity, postID uint64) error {
	if !caller.Can(auth.CapReviewContent) {
		return myErrors.ErrForbidden
	}

	detail, err := s.postDetailRepo.GetPostDetailByPostID(ctx, postID)
	if err != nil {
		return err
	}
	if detail.DraftOverlay == nil {
		return myErrors.ErrNoPendingRevision
	}
	overlay := detail.DraftOverlay

	// 主表字段替换、标记清除与正文落地在同一事务内完成。
	// WHERE 限定已发布且仍挂有覆盖层，两个审核者并发操作时只有一方生效。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, repoErr := s.postAdminRepo.ConsumeDraftOverlay(ctx, tx, postID, map[string]interface{}{
			"title":             overlay.Title,
			"slug":              overlay.Slug,
			"excerpt":           overlay.Excerpt,
			"category":          overlay.Category,
			"tags":              overlay.Tags,
			"featured_image":    overlay.FeaturedImage,
			"word_count":        overlay.WordCount,
			"read_time_minutes": overlay.ReadTimeMinutes,
		})
		if repoErr != nil {
			return repoErr
		}
		if rows == 0 {
			return s.resolveOverlayConflict(ctx, postID)
		}
		return s.postDetailRepo.ApplyDraftOverlay(ctx, tx, postID, overlay.Body)
	})
	if err != nil {
		return err
	}

	// 对外内容已变化，异步通知下游。
	if post, getErr := s.postRepo.GetPostByID(ctx, postID); getErr == nil {
		go func() {
			bgCtx := context.Background()
			if kafkaErr := s.kafkaSvc.SendPostPublishedEvent(bgCtx, buildPostEventData(post)); kafkaErr != nil {
				s.logger.Error("发送内容替换事件失败", zap.Error(kafkaErr), zap.Uint64("postID", postID))
			}
		}()
	}
	s.logger.Info("修订稿已批准并落地", zap.Uint64("postID", postID), zap.String("reviewer", caller.UserID))
	return nil
}

// RejectRevision 实现覆盖层的丢弃。
func (s *revisionService) RejectRevision(ctx context.Context, caller auth.Identity, postID uint64) error {
	if !caller.Can(auth.CapReviewContent) {
		return myErrors.ErrForbidden
	}

	detail, err := s.postDetailRepo.GetPostDetailByPostID(ctx, postID)
	if err != nil {
		return err
	}
	if detail.DraftOverlay == nil {
		// 覆盖层已被消费（批准或丢弃），操作不可重复。
		return myErrors.ErrNoPendingRevision
	}

	// WHERE 同样限定已发布且仍挂有覆盖层，与批准路径互斥。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, repoErr := s.postAdminRepo.ConsumeDraftOverlay(ctx, tx, postID, nil)
		if repoErr != nil {
			return repoErr
		}
		if rows == 0 {
			return s.resolveOverlayConflict(ctx, postID)
		}
		return s.postDetailRepo.ClearDraftOverlay(ctx, tx, postID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("修订稿已丢弃", zap.Uint64("postID", postID), zap.String("reviewer", caller.UserID))
	return nil
}
