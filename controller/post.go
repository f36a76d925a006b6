package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostController 定义博文作者侧与公开读的控制器
type PostController struct {
	postService     service.PostService
	postListService service.PostListService
}

// NewPostController 构造函数，用于创建 PostController 实例
func NewPostController(postService service.PostService, postListService service.PostListService) *PostController {
	return &PostController{
		postService:     postService,
		postListService: postListService,
	}
}

// CreatePost 投稿新博文
// @Summary      投稿新博文
// @Description  提交标题、摘要、正文等内容创建博文，新建即进入待审核状态。UserID 从请求上下文中获取。
// @Tags         posts (博文)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "投稿内容"
// @Success      200 {object} vo.PostDetailResponseWrapper "成功响应，包含新建博文的完整详情"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求体: "+err.Error())
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	detailVO, err := ctrl.postService.CreatePost(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err, "投稿失败")
		return
	}
	response.RespondSuccess(c, detailVO, "投稿成功，已进入审核队列")
}

// UpdatePost 编辑未发布的博文
// @Summary      编辑未发布的博文
// @Description  编辑待审核或已拒绝的博文内容。已拒绝的博文可通过 resubmit 标志重新提交审核。已发布的博文请走修订稿接口。
// @Tags         posts (博文)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Param        request body dto.UpdatePostRequest true "更新内容（缺省字段保持不变）"
// @Success      200 {object} vo.PostDetailResponseWrapper "成功响应，包含更新后的博文详情"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "非作者本人且无管理权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "博文当前状态不允许直接编辑"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id} [put]
func (ctrl *PostController) UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求体: "+err.Error())
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	detailVO, err := ctrl.postService.UpdatePost(c.Request.Context(), caller, postID, &req)
	if err != nil {
		respondServiceError(c, err, "编辑博文失败")
		return
	}
	response.RespondSuccess(c, detailVO, "博文更新成功")
}

// DeletePost 删除博文
// @Summary      删除博文
// @Description  软删除博文及其详情。审核者可删除任意博文；作者本人只能删除未发布（待审核或已拒绝）的博文。
// @Tags         posts (博文)
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除该博文"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id} [delete]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.postService.DeletePost(c.Request.Context(), caller, postID); err != nil {
		respondServiceError(c, err, "删除博文失败")
		return
	}
	response.RespondSuccess[any](c, nil, "博文删除成功")
}

// GetPostDetail 获取单篇博文详情
// @Summary      获取博文详情
// @Description  获取单篇博文的完整详情。已发布的博文对所有人可见；其他状态仅作者本人与审核者可见。作者本人与审核者可看到待审修订稿。
// @Tags         posts (博文)
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.PostDetailResponseWrapper "成功响应，包含博文详情"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在或不可见"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id} [get]
func (ctrl *PostController) GetPostDetail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	detailVO, err := ctrl.postService.GetPostDetailByID(c.Request.Context(), caller, postID)
	if err != nil {
		respondServiceError(c, err, "获取博文详情失败")
		return
	}
	response.RespondSuccess(c, detailVO, "博文详情获取成功")
}

// GetMyPosts 获取当前用户自己的博文列表 (分页)
// @Summary      获取我的博文列表
// @Description  获取当前登录用户的博文列表，支持按状态筛选，分页加载。作者可见自己全部状态的博文，包括已拒绝的。
// @Tags         posts (博文)
// @Produce      json
// @Param        page query int false "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        pageSize query int false "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Param        status query int false "博文状态 (0:待审核, 1:已发布, 2:已拒绝)" format(int32) Enums(0,1,2)
// @Success      200 {object} vo.ListPostsResponseWrapper "成功响应，包含博文列表和总记录数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/mine [get]
func (ctrl *PostController) GetMyPosts(c *gin.Context) {
	var reqDTO dto.GetUserPostsRequestDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	listVO, err := ctrl.postListService.GetMyPosts(c.Request.Context(), caller, &reqDTO)
	if err != nil {
		respondServiceError(c, err, "获取我的博文列表失败")
		return
	}
	response.RespondSuccess(c, listVO, "我的博文列表获取成功")
}

// ListPublished 获取已发布的博文列表 (公开)
// @Summary      获取已发布博文列表 (公开)
// @Description  公开浏览已发布的博文列表，支持按分类与标签筛选，按发布时间倒序分页。
// @Tags         posts (博文)
// @Produce      json
// @Param        page query int false "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        pageSize query int false "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Param        category query string false "分类精确筛选"
// @Param        tag query string false "标签成员筛选"
// @Success      200 {object} vo.ListPostsResponseWrapper "成功响应，包含博文列表和总记录数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts [get]
func (ctrl *PostController) ListPublished(c *gin.Context) {
	var reqDTO dto.ListPublishedRequestDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.postListService.ListPublished(c.Request.Context(), &reqDTO)
	if err != nil {
		respondServiceError(c, err, "获取博文列表失败")
		return
	}
	response.RespondSuccess(c, listVO, "博文列表获取成功")
}

// GetPublishedBySlug 按 slug 获取已发布博文详情 (公开)
// @Summary      按 slug 获取博文详情 (公开)
// @Description  通过 URL slug 读取单篇已发布博文的完整内容，待审修订稿对公开读不可见。
// @Tags         posts (博文)
// @Produce      json
// @Param        slug path string true "博文 slug"
// @Success      200 {object} vo.PostDetailResponseWrapper "成功响应，包含博文详情"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在或未发布"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/slug/{slug} [get]
func (ctrl *PostController) GetPublishedBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "slug 不能为空")
		return
	}

	detailVO, err := ctrl.postListService.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err, "获取博文详情失败")
		return
	}
	response.RespondSuccess(c, detailVO, "博文详情获取成功")
}

// RegisterRoutes 注册 PostController 的路由
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.POST("", ctrl.CreatePost)                   // POST /api/v1/blog/posts
		posts.GET("", ctrl.ListPublished)                 // GET /api/v1/blog/posts
		posts.GET("/mine", ctrl.GetMyPosts)               // GET /api/v1/blog/posts/mine
		posts.GET("/slug/:slug", ctrl.GetPublishedBySlug) // GET /api/v1/blog/posts/slug/:slug
		posts.GET("/:post_id", ctrl.GetPostDetail)        // GET /api/v1/blog/posts/:post_id
		posts.PUT("/:post_id", ctrl.UpdatePost)           // PUT /api/v1/blog/posts/:post_id
		posts.DELETE("/:post_id", ctrl.DeletePost)        // DELETE /api/v1/blog/posts/:post_id
	}
}
