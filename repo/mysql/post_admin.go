package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
)

// QueueCounts 审核看板各桶的计数结果
type QueueCounts struct {
	PendingSubmissions int64
	PendingRevisions   int64
	Published          int64
	Rejected           int64
}

// PostAdminRepository 定义了审核与管理相关的数据库操作接口。
// - 状态流转全部通过带状态前置条件的条件更新实现，
//   并发下竞争失败的一方 RowsAffected 为 0，由服务层据此判定冲突。
type PostAdminRepository interface {
	// TransitionStatus 将博文从 fromStatus 原子地流转到 toStatus。
	// - extra 携带随状态一起写入的字段（拒绝原因、发布时间等）。
	// - WHERE 同时限定当前状态，保证“只有待审核的博文才能被批准/拒绝”
	//   这类约束在数据库层面原子生效。
	// - 返回受影响行数，0 表示博文不存在或状态不匹配，由服务层回查区分。
	TransitionStatus(ctx context.Context, db *gorm.DB, postID uint64, fromStatus, toStatus enums.Status, extra map[string]interface{}) (int64, error)

	// ConsumeDraftOverlay 消费草稿覆盖层：在“已发布且仍挂有覆盖层”的前提下
	// 原子更新主表字段并清除覆盖层标记。
	// - updates 由服务层组装：批准时携带覆盖层的全部内容字段，丢弃时为空。
	// - WHERE 同时限定状态与覆盖层标记，两个审核者并发消费同一覆盖层时
	//   只有一方生效。
	// - 返回受影响行数，0 表示博文不存在、未发布或覆盖层已被消费。
	ConsumeDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64, updates map[string]interface{}) (int64, error)

	// ListPostsByCondition 根据多种可选条件分页查询博文列表。
	// - 服务于管理端后台的筛选需求，包括按“挂有待审覆盖层”过滤。
	ListPostsByCondition(ctx context.Context, req *dto.ListPostsByConditionRequest) ([]*entities.Post, int64, error)

	// ListByStatus 分页查询指定状态的博文，按创建时间升序（先到先审）。
	// - 审核队列中“初次投稿”分区的数据来源。
	ListByStatus(ctx context.Context, status enums.Status, offset, limit int) ([]*entities.Post, int64, error)

	// ListPublishedWithOverlay 分页查询挂有待审草稿覆盖层的已发布博文。
	// - 审核队列中“修订稿”分区的数据来源，依赖 has_draft_overlay 标记列，
	//   避免在 JSON 详情列上做扫描。
	ListPublishedWithOverlay(ctx context.Context, offset, limit int) ([]*entities.Post, int64, error)

	// CountModerationBuckets 统计审核看板各桶的数量。
	// - 结果供缓存快照使用，不要求与并发写严格一致。
	CountModerationBuckets(ctx context.Context) (*QueueCounts, error)
}

// postAdminRepository 是 PostAdminRepository 接口的 MySQL 实现。
type postAdminRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostAdminRepository 是 postAdminRepository 的构造函数。
func NewPostAdminRepository(db *gorm.DB, logger *core.ZapLogger) PostAdminRepository {
	return &postAdminRepository{
		db:     db,
		logger: logger,
	}
}

// TransitionStatus 实现带前置状态条件的原子状态流转。
func (r *postAdminRepository) TransitionStatus(ctx context.Context, db *gorm.DB, postID uint64, fromStatus, toStatus enums.Status, extra map[string]interface{}) (int64, error) {
	updateData := map[string]interface{}{
		"status":     toStatus,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updateData[k] = v
	}

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND status = ? AND deleted_at IS NULL", postID, fromStatus).
		Updates(updateData)
	if result.Error != nil {
		r.logger.Error("博文状态流转数据库出错",
			zap.Error(result.Error),
			zap.Uint64("postID", postID),
			zap.Any("from", fromStatus),
			zap.Any("to", toStatus),
		)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ConsumeDraftOverlay 实现覆盖层的原子消费。
func (r *postAdminRepository) ConsumeDraftOverlay(ctx context.Context, db *gorm.DB, postID uint64, updates map[string]interface{}) (int64, error) {
	updateData := map[string]interface{}{
		"has_draft_overlay": false,
		"updated_at":        time.Now(),
	}
	for k, v := range updates {
		updateData[k] = v
	}

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND status = ? AND has_draft_overlay = ? AND deleted_at IS NULL",
			postID, enums.Approved, true).
		Updates(updateData)
	if result.Error != nil {
		r.logger.Error("消费草稿覆盖层数据库出错",
			zap.Error(result.Error),
			zap.Uint64("postID", postID),
		)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListPostsByCondition 实现按条件分页查询博文。
func (r *postAdminRepository) ListPostsByCondition(ctx context.Context, req *dto.ListPostsByConditionRequest) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var total int64

	// Model(&entities.Post{}) 让 GORM 知道基础查询针对哪个表，Count 操作需要。
	query := r.db.WithContext(ctx).Model(&entities.Post{})

	// --- 动态构建查询条件 ---
	if req.Title != nil && *req.Title != "" {
		query = query.Where("title LIKE ?", "%"+*req.Title+"%")
	}
	if req.AuthorID != nil && *req.AuthorID != "" {
		query = query.Where("author_id = ?", *req.AuthorID)
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	if req.Category != nil && *req.Category != "" {
		query = query.Where("category = ?", *req.Category)
	}
	if req.HasDraftOverlay != nil {
		query = query.Where("has_draft_overlay = ?", *req.HasDraftOverlay)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("按条件统计博文总数失败", zap.Error(err))
		return nil, 0, err
	}

	// --- 排序与分页 ---
	orderBy := req.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	direction := "ASC"
	if req.OrderDesc {
		direction = "DESC"
	}
	offset := (req.Page - 1) * req.PageSize

	err := query.Order(orderBy + " " + direction).
		Offset(offset).
		Limit(req.PageSize).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("按条件查询博文列表失败", zap.Error(err))
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByStatus 实现审核队列初次投稿分区的查询。
func (r *postAdminRepository) ListByStatus(ctx context.Context, status enums.Status, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计指定状态博文总数失败", zap.Error(err), zap.Any("status", status))
		return nil, 0, err
	}
	// 先到先审，按创建时间升序。
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		r.logger.Error("查询指定状态博文列表失败", zap.Error(err), zap.Any("status", status))
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPublishedWithOverlay 实现审核队列修订稿分区的查询。
func (r *postAdminRepository) ListPublishedWithOverlay(ctx context.Context, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).
		Where("status = ? AND has_draft_overlay = ?", enums.Approved, true)
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计挂有覆盖层的博文总数失败", zap.Error(err))
		return nil, 0, err
	}
	// 覆盖层没有独立的提交时间列，用博文更新时间近似先到先审。
	err := query.Order("updated_at ASC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		r.logger.Error("查询挂有覆盖层的博文列表失败", zap.Error(err))
		return nil, 0, err
	}
	return posts, total, nil
}

// CountModerationBuckets 实现审核看板各桶计数。
func (r *postAdminRepository) CountModerationBuckets(ctx context.Context) (*QueueCounts, error) {
	counts := &QueueCounts{}

	type bucket struct {
		dest  *int64
		where string
		args  []interface{}
	}
	buckets := []bucket{
		{&counts.PendingSubmissions, "status = ?", []interface{}{enums.Pending}},
		{&counts.PendingRevisions, "status = ? AND has_draft_overlay = ?", []interface{}{enums.Approved, true}},
		{&counts.Published, "status = ?", []interface{}{enums.Approved}},
		{&counts.Rejected, "status = ?", []interface{}{enums.Rejected}},
	}
	for _, b := range buckets {
		err := r.db.WithContext(ctx).Model(&entities.Post{}).
			Where(b.where, b.args...).
			Count(b.dest).Error
		if err != nil {
			r.logger.Error("统计审核看板计数失败", zap.Error(err), zap.String("where", b.where))
			return nil, err
		}
	}
	return counts, nil
}

// NullReason 将拒绝原因包装为 sql.NullString。
// - 空字符串视为 NULL，与“批准时清空原因”的语义一致。
func NullReason(reason string) sql.NullString {
	if reason == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: reason, Valid: true}
}
