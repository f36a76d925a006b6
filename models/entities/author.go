package entities

import "time"

// Author 作者展示信息的本地读模型
// - 数据来源于用户服务，通过 Kafka 的用户资料变更事件异步同步（见 mq/consumer）
// - 只存列表页/详情页需要展示的字段，避免读路径跨服务调用
// - 表名: authors
type Author struct {
	// 作者ID，用户服务的 UUID，主键
	ID string `gorm:"type:char(36);primaryKey"`

	// 用户名
	Username string `gorm:"type:varchar(50);not null"`

	// 头像 URL
	Avatar string `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
