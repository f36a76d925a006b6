package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// AuthorRepository 定义了作者读模型的持久化操作接口。
// - 数据由用户服务的 Kafka 事件同步而来，本服务只读与覆盖写。
type AuthorRepository interface {
	// GetAuthorByID 根据用户 ID 检索作者信息。
	// - 未找到时返回 commonerrors.ErrRepoNotFound，
	//   调用方（作者信息解析）将其视为“作者未知”而非失败。
	GetAuthorByID(ctx context.Context, userID string) (*entities.Author, error)

	// UpsertAuthor 写入或覆盖作者信息。
	// - 消费用户资料变更事件时调用，后到的事件直接覆盖。
	UpsertAuthor(ctx context.Context, author *entities.Author) error
}

// authorRepository 是 AuthorRepository 接口的 MySQL 实现。
type authorRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewAuthorRepository 是 authorRepository 的构造函数。
func NewAuthorRepository(db *gorm.DB, logger *core.ZapLogger) AuthorRepository {
	return &authorRepository{
		db:     db,
		logger: logger,
	}
}

// GetAuthorByID 实现作者信息查询。
func (r *authorRepository) GetAuthorByID(ctx context.Context, userID string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&author).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("查询作者读模型失败", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	return &author, nil
}

// UpsertAuthor 实现作者信息的插入或覆盖。
func (r *authorRepository) UpsertAuthor(ctx context.Context, author *entities.Author) error {
	// 主键冲突时覆盖资料字段，GORM 会生成 ON DUPLICATE KEY UPDATE。
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "avatar", "updated_at"}),
	}).Create(author).Error
	if err != nil {
		r.logger.Error("写入作者读模型失败", zap.Error(err), zap.String("userID", author.ID))
		return err
	}
	return nil
}
