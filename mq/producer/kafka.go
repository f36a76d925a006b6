package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/events"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// SendPostPendingReviewEvent 发送博文待审核事件到 Kafka
// - 意图: 新建博文或驳回后重新提交时通知审核侧
// - 输入: ctx context.Context 上下文, postData events.PostEventData 博文核心数据
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostPendingReviewEvent(ctx context.Context, postData events.PostEventData) error {
	event := events.PostPendingReviewEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostPendingReview, event)
}

// SendPostPublishedEvent 发送博文发布事件到 Kafka
// - 意图: 初次发布或覆盖层合并后通知下游（搜索同步、通知等）对外内容已变化
// - 输入: ctx context.Context 上下文, postData events.PostEventData 博文核心数据
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostPublishedEvent(ctx context.Context, postData events.PostEventData) error {
	event := events.PostPublishedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostPublished, event)
}

// SendRevisionPendingEvent 发送草稿覆盖层待审事件到 Kafka
// - 意图: 已发布博文挂上覆盖层时通知审核侧
// - 输入: ctx context.Context 上下文, postID uint64 博文ID, submittedAt 覆盖层提交时间
// - 输出: error 错误信息
func (p *KafkaProducer) SendRevisionPendingEvent(ctx context.Context, postID uint64, submittedAt time.Time) error {
	event := events.RevisionPendingEvent{
		EventID:     uuid.New().String(),
		Timestamp:   time.Now(),
		PostID:      postID,
		SubmittedAt: submittedAt,
	}
	return p.SendEvent(ctx, p.topics.RevisionPending, event)
}

// SendPostDeleteEvent 发送博文删除事件到 Kafka
// - 意图: 将博文删除事件发送到 PostDeleted 主题
// - 输入: ctx context.Context 上下文, postID uint64 博文ID
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostDeleteEvent(ctx context.Context, postID uint64) error {
	event := events.PostDeletedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		PostID:    postID,
	}
	return p.SendEvent(ctx, p.topics.PostDeleted, event)
}
