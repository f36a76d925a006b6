package consumer

import (
	"context"
	"encoding/json"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// MessageHandler 定义了 Kafka 消息处理器的通用接口。
type MessageHandler interface {
	// Handle 处理单条消息。
	// - 返回 error 仅用于记录，消费循环不会因处理失败而中断。
	Handle(ctx context.Context, msg kafka.Message) error
}

// UserProfileHandler 消费用户服务的资料变更事件，
// 维护 authors 表这份本地读模型，供作者信息解析使用。
type UserProfileHandler struct {
	authorRepo mysql.AuthorRepository
	logger     *core.ZapLogger
}

// NewUserProfileHandler 是 UserProfileHandler 的构造函数。
func NewUserProfileHandler(authorRepo mysql.AuthorRepository, logger *core.ZapLogger) *UserProfileHandler {
	return &UserProfileHandler{
		authorRepo: authorRepo,
		logger:     logger,
	}
}

// Handle 实现 MessageHandler 接口。
func (h *UserProfileHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.UserProfileUpdatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 消息体损坏无法重试成功，记录后放过以免阻塞分区。
		h.logger.Error("反序列化用户资料变更事件失败",
			zap.Error(err),
			zap.Int64("offset", msg.Offset))
		return nil
	}
	if event.UserID == "" {
		h.logger.Warn("用户资料变更事件缺少 userID", zap.String("eventID", event.EventID))
		return nil
	}

	author := &entities.Author{
		ID:       event.UserID,
		Username: event.Username,
		Avatar:   event.Avatar,
	}
	if err := h.authorRepo.UpsertAuthor(ctx, author); err != nil {
		h.logger.Error("同步作者读模型失败",
			zap.Error(err),
			zap.String("userID", event.UserID))
		return err
	}

	h.logger.Debug("作者读模型已同步",
		zap.String("userID", event.UserID),
		zap.String("eventID", event.EventID))
	return nil
}
