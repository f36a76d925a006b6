package dto

// SubmitRevisionRequest 为已发布博文提交草稿覆盖层的请求体。
// - 覆盖层是一份完整替换稿，不做逐字段合并，因此全部字段均需提交
type SubmitRevisionRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Excerpt       string   `json:"excerpt" binding:"required,max=500"`
	Body          string   `json:"body" binding:"required"`
	Category      string   `json:"category" binding:"required,max=100"`
	Tags          []string `json:"tags" binding:"max=10,dive,max=50"`
	FeaturedImage string   `json:"featured_image" binding:"omitempty,url"`
}
