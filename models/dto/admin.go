package dto

import "github.com/Xushengqwer/go-common/models/enums"

// RejectPostRequest 拒绝初次投稿的请求体。
// - 拒绝初次投稿必须给出原因；批准与丢弃覆盖层都无需附言（刻意不对称）
type RejectPostRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListPostsByConditionRequest 管理端按条件分页查询博文列表的请求。
// - 所有过滤字段均为可选，nil 表示不按该字段过滤
type ListPostsByConditionRequest struct {
	Title           *string       `form:"title"`
	AuthorID        *string       `form:"authorID"`
	Status          *enums.Status `form:"status" binding:"omitempty,oneof=0 1 2"`
	Category        *string       `form:"category"`
	HasDraftOverlay *bool         `form:"hasDraftOverlay"` // 仅筛选挂有待审覆盖层的已发布博文
	OrderBy         string        `form:"orderBy" binding:"omitempty,oneof=created_at updated_at"`
	OrderDesc       bool          `form:"orderDesc"`
	Page            int           `form:"page" binding:"required,min=1"`
	PageSize        int           `form:"pageSize" binding:"required,min=1,max=100"`
}
