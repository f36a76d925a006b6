package events

import "time"

// UserProfileUpdatedEvent 用户服务发出的资料变更事件。
// 本服务消费它来维护 authors 表这份本地读模型（见 mq/consumer）。
type UserProfileUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
}
