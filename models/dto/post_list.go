package dto

// GetUserPostsRequestDTO 作者查询自己博文列表的请求。
// - 作者可见自己全部状态的博文，包括已拒绝的
type GetUserPostsRequestDTO struct {
	Status   *int `form:"status" binding:"omitempty,oneof=0 1 2"`
	Page     int  `form:"page" binding:"omitempty,min=1"`
	PageSize int  `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// GetOffset 计算数据库查询的偏移量
func (r *GetUserPostsRequestDTO) GetOffset() int {
	page := r.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * r.GetLimit()
}

// GetLimit 计算数据库查询的单页数量
func (r *GetUserPostsRequestDTO) GetLimit() int {
	if r.PageSize < 1 {
		return 10
	}
	return r.PageSize
}

// ListPublishedRequestDTO 公开浏览已发布博文列表的请求。
type ListPublishedRequestDTO struct {
	Category *string `form:"category"`
	Tag      *string `form:"tag"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// GetOffset 计算数据库查询的偏移量
func (r *ListPublishedRequestDTO) GetOffset() int {
	page := r.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * r.GetLimit()
}

// GetLimit 计算数据库查询的单页数量
func (r *ListPublishedRequestDTO) GetLimit() int {
	if r.PageSize < 1 {
		return 10
	}
	return r.PageSize
}
