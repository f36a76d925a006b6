package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	PostPendingReview  string `mapstructure:"postPendingReview" yaml:"postPendingReview"`   // 博文进入待审核主题
	PostPublished      string `mapstructure:"postPublished" yaml:"postPublished"`           // 博文内容对外发布/更新主题
	RevisionPending    string `mapstructure:"revisionPending" yaml:"revisionPending"`       // 草稿覆盖层待审主题
	PostDeleted        string `mapstructure:"postDeleted" yaml:"postDeleted"`               // 博文删除主题
	UserProfileUpdated string `mapstructure:"userProfileUpdated" yaml:"userProfileUpdated"` // 用户资料变更主题（消费）
}
