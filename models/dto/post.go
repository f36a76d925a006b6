package dto

// CreatePostRequest 创建博文的请求体。
// - 创建即进入待审核状态，正文与元数据一次性提交
type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Excerpt       string   `json:"excerpt" binding:"required,max=500"`
	Body          string   `json:"body" binding:"required"`
	Category      string   `json:"category" binding:"required,max=100"`
	Tags          []string `json:"tags" binding:"max=10,dive,max=50"`
	FeaturedImage string   `json:"featured_image" binding:"omitempty,url"`
}

// UpdatePostRequest 编辑未发布博文（待审核或已拒绝）的请求体。
// - 指针字段表示部分更新：nil 表示该字段保持不变
// - Resubmit 仅对已拒绝的博文有意义：置 true 时博文回到待审核状态并清空拒绝原因
type UpdatePostRequest struct {
	Title         *string   `json:"title" binding:"omitempty,max=255"`
	Excerpt       *string   `json:"excerpt" binding:"omitempty,max=500"`
	Body          *string   `json:"body"`
	Category      *string   `json:"category" binding:"omitempty,max=100"`
	Tags          *[]string `json:"tags" binding:"omitempty,max=10,dive,max=50"`
	FeaturedImage *string   `json:"featured_image" binding:"omitempty,url"`
	Resubmit      bool      `json:"resubmit"`
}
