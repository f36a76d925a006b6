package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/go-common/models/enums"
)

// PostResponse 博文列表项视图对象，不含正文
type PostResponse struct {
	ID              uint64       `json:"id"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Excerpt         string       `json:"excerpt"`
	Category        string       `json:"category"`
	Tags            []string     `json:"tags"`
	FeaturedImage   string       `json:"featured_image"`
	AuthorID        string       `json:"author_id"`
	Status          enums.Status `json:"status"`
	RejectionReason *string      `json:"rejection_reason,omitempty"` // 仅已拒绝的博文携带
	WordCount       int          `json:"word_count"`
	ReadTimeMinutes int          `json:"read_time_minutes"`
	HasDraftOverlay bool         `json:"has_draft_overlay"`
	PublishedAt     *time.Time   `json:"published_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// MapPostToPostResponseVO 将博文实体转换为列表项视图对象
func MapPostToPostResponseVO(post *entities.Post) *PostResponse {
	if post == nil {
		return nil
	}
	resp := &PostResponse{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		Category:        post.Category,
		Tags:            post.Tags,
		FeaturedImage:   post.FeaturedImage,
		AuthorID:        post.AuthorID,
		Status:          post.Status,
		WordCount:       post.WordCount,
		ReadTimeMinutes: post.ReadTimeMinutes,
		HasDraftOverlay: post.HasDraftOverlay,
		PublishedAt:     post.PublishedAt,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
	if post.RejectionReason.Valid {
		reason := post.RejectionReason.String
		resp.RejectionReason = &reason
	}
	return resp
}

// MapPostsToPostResponsesVO 批量转换博文实体为列表项视图对象
func MapPostsToPostResponsesVO(posts []*entities.Post) []*PostResponse {
	if len(posts) == 0 {
		return []*PostResponse{}
	}
	responses := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, MapPostToPostResponseVO(p))
	}
	return responses
}

// ListPostsVO 分页博文列表的响应
type ListPostsVO struct {
	Posts []*PostResponse `json:"posts"`
	Total int64           `json:"total"`
}
