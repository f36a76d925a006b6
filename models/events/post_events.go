package events

import "time"

// PostEventData 博文事件的核心数据载荷，供下游（搜索同步、通知等）消费。
// - 不携带正文：正文体积大且下游按需回查
type PostEventData struct {
	ID              uint64   `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	AuthorID        string   `json:"author_id"`
	Status          int      `json:"status"`
	WordCount       int      `json:"word_count"`
	ReadTimeMinutes int      `json:"read_time_minutes"`
	CreatedAt       int64    `json:"created_at"` // Unix 毫秒
	UpdatedAt       int64    `json:"updated_at"` // Unix 毫秒
}

// PostPendingReviewEvent 博文进入待审核状态（新建或驳回后重新提交）
type PostPendingReviewEvent struct {
	EventID   string        `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	Post      PostEventData `json:"post"`
}

// PostPublishedEvent 博文对外内容发生变化（初次发布，或覆盖层合并后的内容替换）
type PostPublishedEvent struct {
	EventID   string        `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	Post      PostEventData `json:"post"`
}

// RevisionPendingEvent 已发布博文挂上了待审的草稿覆盖层
type RevisionPendingEvent struct {
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	PostID      uint64    `json:"post_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PostDeletedEvent 博文被删除
type PostDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	PostID    uint64    `json:"post_id"`
}
