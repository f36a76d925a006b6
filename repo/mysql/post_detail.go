package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostDetailRepository 定义了博文详情（正文与草稿覆盖层）的持久化操作接口。
// - 覆盖层的挂载/应用/丢弃都需要与主表的 has_draft_overlay 标记同事务更新，
//   因此写操作均接受调用方传入的事务对象。
type PostDetailRepository interface {
	// CreatePostDetail 持久化一条新的博文详情记录。
	CreatePostDetail(ctx context.Context, db *gorm.DB, detail *entities.PostDetail) error

	// GetPostDetailByPostID 根据博文 ID 检索详情。
	// - 未找到时返回 commonerrors.ErrRepoNotFound。
	GetPostDetailByPostID(ctx context.Context, postID uint64) (*entities.PostDetail, error)

	// UpdateBody 更新未发布博文的正文。
	// - 正文之外的元数据在主表，由 PostRepository.UpdateContentFields 负责。
	UpdateBody(ctx context.Context, db *gorm.DB, postID uint64, body string) error

	// SetDraftOverlay 将草稿覆盖层整体写入详情记录。
	// - 重复提交时直接整体替换旧覆盖层。
	SetDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64, overlay *entities.Revision) error

	// ApplyDraftOverlay 将覆盖层内容落为正文并清空覆盖层。
	// - 批准修订时调用，body 为覆盖层中的新正文。
	ApplyDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64, body string) error

	// ClearDraftOverlay 丢弃覆盖层，正文保持不变。
	// - 拒绝修订时调用。
	ClearDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64) error

	// DeletePostDetail 软删除博文详情。
	// - 与主表的软删除在同一事务中执行。
	DeletePostDetail(ctx context.Context, db *gorm.DB, postID uint64) error
}

// postDetailRepository 是 PostDetailRepository 接口的 MySQL 实现。
type postDetailRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostDetailRepository 是 postDetailRepository 的构造函数。
func NewPostDetailRepository(db *gorm.DB, logger *core.ZapLogger) PostDetailRepository {
	return &postDetailRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePostDetail 实现详情记录的插入。
func (r *postDetailRepository) CreatePostDetail(ctx context.Context, db *gorm.DB, detail *entities.PostDetail) error {
	if err := db.WithContext(ctx).Create(detail).Error; err != nil {
		return err
	}
	return nil
}

// GetPostDetailByPostID 实现根据博文 ID 获取详情的逻辑。
func (r *postDetailRepository) GetPostDetailByPostID(ctx context.Context, postID uint64) (*entities.PostDetail, error) {
	var detail entities.PostDetail
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据博文 ID 获取详情失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, err
	}
	return &detail, nil
}

// UpdateBody 实现正文更新。
func (r *postDetailRepository) UpdateBody(ctx context.Context, db *gorm.DB, postID uint64, body string) error {
	result := db.WithContext(ctx).
		Model(&entities.PostDetail{}).
		Where("post_id = ?", postID).
		Updates(map[string]interface{}{
			"body":       body,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("更新博文正文失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// SetDraftOverlay 实现覆盖层的整体写入。
func (r *postDetailRepository) SetDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64, overlay *entities.Revision) error {
	// 通过 Model 实例走 serializer:json 的序列化路径。
	result := db.WithContext(ctx).
		Model(&entities.PostDetail{}).
		Where("post_id = ?", postID).
		Updates(map[string]interface{}{
			"draft_overlay": overlay,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("写入草稿覆盖层失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// ApplyDraftOverlay 实现覆盖层内容落地：正文替换且覆盖层清空在同一条 UPDATE 内完成。
func (r *postDetailRepository) ApplyDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64, body string) error {
	result := db.WithContext(ctx).
		Model(&entities.PostDetail{}).
		Where("post_id = ?", postID).
		Updates(map[string]interface{}{
			"body":          body,
			"draft_overlay": nil,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("应用草稿覆盖层失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// ClearDraftOverlay 实现覆盖层的丢弃。
func (r *postDetailRepository) ClearDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64) error {
	result := db.WithContext(ctx).
		Model(&entities.PostDetail{}).
		Where("post_id = ?", postID).
		Updates(map[string]interface{}{
			"draft_overlay": nil,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("丢弃草稿覆盖层失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeletePostDetail 实现详情的软删除。
func (r *postDetailRepository) DeletePostDetail(ctx context.Context, db *gorm.DB, postID uint64) error {
	result := db.WithContext(ctx).Where("post_id = ?", postID).Delete(&entities.PostDetail{})
	if result.Error != nil {
		r.logger.Error("软删除博文详情失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	return nil
}
