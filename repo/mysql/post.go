package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostRepository 定义了博文主表在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type PostRepository interface {
	// CreatePost 持久化一条新的博文记录。
	// - 这是博文生命周期的起点，新建即为待审核状态。
	// - db 参数允许调用方传入事务对象，与详情表的写入保持原子。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// GetPostByID 根据主键 ID 检索博文。
	// - 未找到时返回 commonerrors.ErrRepoNotFound。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// GetPostBySlug 根据 slug 检索已发布的博文。
	// - 仅用于公开读路径，因此限定 status 为已发布。
	// - 未找到时返回 commonerrors.ErrRepoNotFound。
	GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error)

	// SlugExists 判断 slug 是否已被其他博文占用。
	// - excludeID 用于编辑场景下排除博文自身，新建时传 0。
	// - 软删除的博文不参与占用判断。
	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)

	// UpdateContentFields 条件更新未发布博文（待审核或已拒绝）的元数据字段。
	// - updates 为字段名到新值的映射，由服务层组装。
	// - WHERE 条件同时限定状态，保证“只有未发布的博文可以被直接编辑”这一
	//   约束在数据库层面原子生效；并发下状态已变更时 RowsAffected 为 0。
	// - 返回受影响行数，由服务层区分“不存在”与“状态不允许”。
	UpdateContentFields(ctx context.Context, db *gorm.DB, postID uint64, allowed []enums.Status, updates map[string]interface{}) (int64, error)

	// DeletePost 对指定博文执行软删除。
	// - 软删除通过 GORM 的约定（填充 deleted_at 字段）实现，数据保留可追溯。
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error

	// GetPostsByAuthor 分页查询指定作者的博文列表，可按状态过滤。
	// - 作者本人可见全部状态，包括已拒绝的博文及其拒绝原因。
	GetPostsByAuthor(ctx context.Context, authorID string, status *enums.Status, offset, limit int) ([]*entities.Post, int64, error)

	// ListPublished 分页查询已发布的博文列表，可按分类与标签过滤。
	// - 公开读路径，按发布时间倒序。
	// - 标签过滤依赖 MySQL 的 JSON_CONTAINS。
	ListPublished(ctx context.Context, category *string, tag *string, offset, limit int) ([]*entities.Post, int64, error)
}

// postRepository 是 PostRepository 接口针对 MySQL 的具体实现。
type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost 实现博文的数据库插入操作。
func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	// 使用传入的 db 对象（通常为事务对象 tx）执行写入，
	// GORM 会自动填充 BaseModel 中的 ID 和时间戳。
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	return nil
}

// GetPostByID 实现根据 ID 获取博文的逻辑。
func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		// 区分“记录未找到”和其他数据库错误。
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取博文失败", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug 实现公开读路径按 slug 获取已发布博文的逻辑。
func (r *postRepository) GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, enums.Approved).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 slug 获取博文失败", zap.Error(err), zap.String("slug", slug))
		return nil, err
	}
	return &post, nil
}

// SlugExists 实现 slug 占用检查。
func (r *postRepository) SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		r.logger.Error("检查 slug 占用失败", zap.Error(err), zap.String("slug", slug))
		return false, err
	}
	return count > 0, nil
}

// UpdateContentFields 实现未发布博文元数据的条件更新。
func (r *postRepository) UpdateContentFields(ctx context.Context, db *gorm.DB, postID uint64, allowed []enums.Status, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新博文", zap.Uint64("postID", postID))
		return 1, nil
	}
	// 总是更新 updated_at 字段
	updates["updated_at"] = time.Now()

	// 状态条件写进 WHERE，使“未发布才能编辑”的检查与更新原子完成。
	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND status IN ? AND deleted_at IS NULL", postID, allowed).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新博文内容字段数据库出错", zap.Error(result.Error), zap.Uint64("postID", postID))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeletePost 实现博文的软删除。
func (r *postRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Post{}, id)
	if result.Error != nil {
		r.logger.Error("软删除博文失败", zap.Error(result.Error), zap.Uint64("id", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// GetPostsByAuthor 实现作者自己的博文分页查询。
func (r *postRepository) GetPostsByAuthor(ctx context.Context, authorID string, status *enums.Status, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("author_id = ?", authorID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	// 先统计总数，再取当前页数据。
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计作者博文总数失败", zap.Error(err), zap.String("authorID", authorID))
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		r.logger.Error("查询作者博文列表失败", zap.Error(err), zap.String("authorID", authorID))
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPublished 实现公开的已发布博文分页查询。
func (r *postRepository) ListPublished(ctx context.Context, category *string, tag *string, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("status = ?", enums.Approved)
	if category != nil && *category != "" {
		query = query.Where("category = ?", *category)
	}
	if tag != nil && *tag != "" {
		// tags 列为 JSON 数组，使用 JSON_CONTAINS 做成员判断。
		query = query.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", *tag)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计已发布博文总数失败", zap.Error(err))
		return nil, 0, err
	}
	err := query.Order("published_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		r.logger.Error("查询已发布博文列表失败", zap.Error(err))
		return nil, 0, err
	}
	return posts, total, nil
}
