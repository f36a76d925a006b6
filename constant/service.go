package constant

// 服务标识，用于链路追踪与中间件
const (
	ServiceName    = "blog-service"
	ServiceVersion = "1.0.0"
)

const (
	// ReadTimeWordsPerMinute 估算阅读时长使用的每分钟阅读词数
	ReadTimeWordsPerMinute = 200

	// SlugSuffixLength slug 冲突时追加的随机后缀长度（小写字母+数字）
	SlugSuffixLength = 6

	// QueueStatsCronSpec 审核看板计数快照的刷新周期（cron 标准五段表达式，分钟级）
	QueueStatsCronSpec = "*/5 * * * *"
)
