package vo

import "time"

// ModerationQueueItemVO 审核队列中的一项。
// - Kind 标识条目来源：初次投稿（submission）或草稿覆盖层（revision）
// - 覆盖层条目的 SubmittedAt 取覆盖层提交时间，初次投稿取博文创建时间
type ModerationQueueItemVO struct {
	Kind        string        `json:"kind"`
	Post        *PostResponse `json:"post"`
	Author      *AuthorVO     `json:"author,omitempty"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// ModerationQueueVO 审核队列分页响应
type ModerationQueueVO struct {
	Items []*ModerationQueueItemVO `json:"items"`
	Total int64                    `json:"total"`
}

// QueueStatsVO 审核看板计数快照。
// - 数值为近似值，由定时任务周期刷新
type QueueStatsVO struct {
	PendingSubmissions int64     `json:"pending_submissions"`
	PendingRevisions   int64     `json:"pending_revisions"`
	Published          int64     `json:"published"`
	Rejected           int64     `json:"rejected"`
	RefreshedAt        time.Time `json:"refreshed_at"`
}
