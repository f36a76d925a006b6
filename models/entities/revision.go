package entities

import "time"

// Revision 草稿覆盖层：挂在已发布博文下的一次待审修订。
// - 它是全部可变内容字段的完整快照，不做增量 diff；作者重复提交时整体替换（last-write-wins）
// - 没有独立的主键和生命周期，只作为 PostDetail.DraftOverlay 的 JSON 载荷存在
type Revision struct {
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt"`
	Body            string    `json:"body"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	FeaturedImage   string    `json:"featured_image"`
	WordCount       int       `json:"word_count"`
	ReadTimeMinutes int       `json:"read_time_minutes"`
	SubmittedAt     time.Time `json:"submitted_at"`
}
