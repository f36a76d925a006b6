package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// RevisionVO 草稿覆盖层视图对象，只在作者本人与审核端可见
type RevisionVO struct {
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

// MapRevisionToVO 将草稿覆盖层转换为视图对象
func MapRevisionToVO(rev *entities.Revision) *RevisionVO {
	if rev == nil {
		return nil
	}
	return &RevisionVO{
		Title:           rev.Title,
		Slug:            rev.Slug,
		Excerpt:         rev.Excerpt,
		Body:            rev.Body,
		Category:        rev.Category,
		Tags:            rev.Tags,
		FeaturedImage:   rev.FeaturedImage,
		WordCount:       rev.WordCount,
		ReadTimeMinutes: rev.ReadTimeMinutes,
		SubmittedAt:     rev.SubmittedAt,
	}
}

// PostDetailVO 博文详情视图对象，含正文。
// - DraftOverlay 仅对作者本人与审核端填充，公开读路径恒为 nil
type PostDetailVO struct {
	PostResponse
	Body         string      `json:"body"`
	Author       *AuthorVO   `json:"author,omitempty"`
	DraftOverlay *RevisionVO `json:"draft_overlay,omitempty"`
}

// MapPostDetailToVO 组装博文详情视图对象。
// - includeOverlay 控制是否暴露待审覆盖层
func MapPostDetailToVO(post *entities.Post, detail *entities.PostDetail, author *AuthorVO, includeOverlay bool) *PostDetailVO {
	if post == nil || detail == nil {
		return nil
	}
	out := &PostDetailVO{
		PostResponse: *MapPostToPostResponseVO(post),
		Body:         detail.Body,
		Author:       author,
	}
	if includeOverlay {
		out.DraftOverlay = MapRevisionToVO(detail.DraftOverlay)
	}
	return out
}
