package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PostAdminService 定义了博文生命周期中审核侧的业务逻辑接口。
// - 所有状态流转都要求调用者具备审核能力（编辑或管理员）。
type PostAdminService interface {
	// ApprovePost 批准待审核的博文，使其对外发布。
	// - 前置条件 status = 待审核；发布时间取批准时刻。
	// - 批准无需附言。
	ApprovePost(ctx context.Context, caller auth.Identity, postID uint64) error

	// RejectPost 拒绝待审核的博文。
	// - 拒绝必须给出非空原因，作者依据原因修改后可重新提交。
	RejectPost(ctx context.Context, caller auth.Identity, postID uint64, reason string) error

	// UnpublishPost 将已发布的博文下架回待审核状态。
	// - 已挂载的草稿覆盖层保持原样，下架期间覆盖层处于休眠状态。
	UnpublishPost(ctx context.Context, caller auth.Identity, postID uint64) error

	// ListPostsByCondition 管理端按条件分页查询博文列表。
	ListPostsByCondition(ctx context.Context, caller auth.Identity, req *dto.ListPostsByConditionRequest) (*vo.ListPostsVO, error)
}

// postAdminService 是 PostAdminService 接口的具体实现。
type postAdminService struct {
	postRepo      mysql.PostRepository
	postAdminRepo mysql.PostAdminRepository
	db            *gorm.DB
	kafkaSvc      *producer.KafkaProducer
	logger        *core.ZapLogger
}

// NewPostAdminService 是 postAdminService 的构造函数。
func NewPostAdminService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	postAdminRepo mysql.PostAdminRepository,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) PostAdminService {
	return &postAdminService{
		postRepo:      postRepo,
		postAdminRepo: postAdminRepo,
		db:            db,
		kafkaSvc:      kafkaSvc,
		logger:        logger,
	}
}

// transition 执行一次带前置状态的流转，并把 RowsAffected=0 解释为具体错误。
func (s *postAdminService) transition(ctx context.Context, postID uint64, from, to enums.Status, extra map[string]interface{}, conflictMsg string) error {
	rows, err := s.postAdminRepo.TransitionStatus(ctx, s.db, postID, from, to, extra)
	if err != nil {
		return err
	}
	if rows == 0 {
		// 回查区分“博文不存在”与“当前状态不允许该操作”。
		if _, getErr := s.postRepo.GetPostByID(ctx, postID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("%w: %s", myErrors.ErrInvalidTransition, conflictMsg)
	}
	return nil
}

// ApprovePost 实现初次投稿的批准。
func (s *postAdminService) ApprovePost(ctx context.Context, caller auth.Identity, postID uint64) error {
	if !caller.Can(auth.CapReviewContent) {
		return myErrors.ErrForbidden
	}

	now := time.Now()
	err := s.transition(ctx, postID, enums.Pending, enums.Approved, map[string]interface{}{
		"published_at": &now,
	}, "只有待审核的博文可以批准")
	if err != nil {
		return err
	}

	// 异步通知下游对外内容已发布。
	if post, getErr := s.postRepo.GetPostByID(ctx, postID); getErr == nil {
		go func() {
			bgCtx := context.Background()
			if kafkaErr := s.kafkaSvc.SendPostPublishedEvent(bgCtx, buildPostEventData(post)); kafkaErr != nil {
				s.logger.Error("发送博文发布事件失败", zap.Error(kafkaErr), zap.Uint64("postID", postID))
			}
		}()
	}
	s.logger.Info("博文已批准发布", zap.Uint64("postID", postID), zap.String("reviewer", caller.UserID))
	return nil
}

// RejectPost 实现初次投稿的拒绝。
func (s *postAdminService) RejectPost(ctx context.Context, caller auth.Identity, postID uint64, reason string) error {
	if !caller.Can(auth.CapReviewContent) {
		return myErrors.ErrForbidden
	}
	// 拒绝必须携带可执行的反馈，空原因按输入错误处理。
	if reason == "" {
		return fmt.Errorf("%w: 拒绝原因不能为空", myErrors.ErrValidation)
	}

	now := time.Now()
	err := s.transition(ctx, postID, enums.Pending, enums.Rejected, map[string]interface{}{
		"rejection_reason": mysql.NullReason(reason),
		"rejected_at":      &now,
	}, "只有待审核的博文可以拒绝")
	if err != nil {
		return err
	}
	s.logger.Info("博文已拒绝",
		zap.Uint64("postID", postID),
		zap.String("reviewer", caller.UserID),
		zap.String("reason", reason),
	)
	return nil
}

// UnpublishPost 实现已发布博文的下架。
func (s *postAdminService) UnpublishPost(ctx context.Context, caller auth.Identity, postID uint64) error {
	if !caller.Can(auth.CapReviewContent) {
		return myErrors.ErrForbidden
	}

	// 覆盖层字段不动：下架不丢作者已提交的修订稿。
	err := s.transition(ctx, postID, enums.Approved, enums.Pending, nil,
		"只有已发布的博文可以下架")
	if err != nil {
		return err
	}

	// 下架后对外不可见，用删除事件驱动下游摘除。
	go func() {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendPostDeleteEvent(bgCtx, postID); kafkaErr != nil {
			s.logger.Error("发送博文下架事件失败", zap.Error(kafkaErr), zap.Uint64("postID", postID))
		}
	}()
	s.logger.Info("博文已下架", zap.Uint64("postID", postID), zap.String("reviewer", caller.UserID))
	return nil
}

// ListPostsByCondition 实现管理端条件查询。
func (s *postAdminService) ListPostsByCondition(ctx context.Context, caller auth.Identity, req *dto.ListPostsByConditionRequest) (*vo.ListPostsVO, error) {
	if !caller.Can(auth.CapManageAnyPost) {
		return nil, myErrors.ErrForbidden
	}

	posts, total, err := s.postAdminRepo.ListPostsByCondition(ctx, req)
	if err != nil {
		return nil, err
	}
	return &vo.ListPostsVO{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Total: total,
	}, nil
}
