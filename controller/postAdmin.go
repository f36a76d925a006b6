package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostAdminController 定义审核侧的控制器
type PostAdminController struct {
	postAdminService service.PostAdminService
	queueService     service.ModerationQueueService
}

// NewPostAdminController 构造函数，用于创建 PostAdminController 实例
func NewPostAdminController(postAdminService service.PostAdminService, queueService service.ModerationQueueService) *PostAdminController {
	return &PostAdminController{
		postAdminService: postAdminService,
		queueService:     queueService,
	}
}

// ApprovePost 批准待审核的博文
// @Summary      批准博文 (审核)
// @Description  批准待审核的博文，使其对外发布。批准无需附言。
// @Tags         admin (管理)
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "批准成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "博文当前不是待审核状态"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/{post_id}/approve [post]
func (ctrl *PostAdminController) ApprovePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.postAdminService.ApprovePost(c.Request.Context(), caller, postID); err != nil {
		respondServiceError(c, err, "批准博文失败")
		return
	}
	response.RespondSuccess[any](c, nil, "博文已批准发布")
}

// RejectPost 拒绝待审核的博文
// @Summary      拒绝博文 (审核)
// @Description  拒绝待审核的博文。必须给出非空的拒绝原因，作者据此修改后可重新提交。
// @Tags         admin (管理)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Param        request body dto.RejectPostRequest true "拒绝原因"
// @Success      200 {object} vo.BaseResponseWrapper "拒绝成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或原因为空"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "博文当前不是待审核状态"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/{post_id}/reject [post]
func (ctrl *PostAdminController) RejectPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	var req dto.RejectPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求体: "+err.Error())
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.postAdminService.RejectPost(c.Request.Context(), caller, postID, req.Reason); err != nil {
		respondServiceError(c, err, "拒绝博文失败")
		return
	}
	response.RespondSuccess[any](c, nil, "博文已拒绝")
}

// UnpublishPost 下架已发布的博文
// @Summary      下架博文 (审核)
// @Description  将已发布的博文下架回待审核状态。已挂载的修订稿保持原样，下架期间处于休眠状态。
// @Tags         admin (管理)
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "下架成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "博文当前不是已发布状态"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/{post_id}/unpublish [post]
func (ctrl *PostAdminController) UnpublishPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.postAdminService.UnpublishPost(c.Request.Context(), caller, postID); err != nil {
		respondServiceError(c, err, "下架博文失败")
		return
	}
	response.RespondSuccess[any](c, nil, "博文已下架")
}

// ListPostsByCondition 按条件查询博文列表
// @Summary      按条件查询博文列表 (管理)
// @Description  管理端按标题、作者、状态、分类、是否挂有修订稿等条件分页查询博文。
// @Tags         admin (管理)
// @Produce      json
// @Param        title query string false "标题模糊搜索关键词"
// @Param        authorID query string false "作者用户 ID"
// @Param        status query int false "博文状态 (0:待审核, 1:已发布, 2:已拒绝)" format(int32) Enums(0,1,2)
// @Param        category query string false "分类精确筛选"
// @Param        hasDraftOverlay query bool false "是否只看挂有待审修订稿的博文"
// @Param        orderBy query string false "排序字段 (created_at 或 updated_at)" Enums(created_at,updated_at)
// @Param        orderDesc query bool false "是否降序"
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        pageSize query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.ListPostsResponseWrapper "成功响应，包含博文列表和总记录数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无管理权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts [get]
func (ctrl *PostAdminController) ListPostsByCondition(c *gin.Context) {
	var req dto.ListPostsByConditionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	listVO, err := ctrl.postAdminService.ListPostsByCondition(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err, "查询博文列表失败")
		return
	}
	response.RespondSuccess(c, listVO, "博文列表查询成功")
}

// GetModerationQueue 获取审核队列
// @Summary      获取审核队列 (审核)
// @Description  分页获取审核队列。partition=submissions 为初次投稿分区，partition=revisions 为修订稿分区，均按先到先审排序并附作者信息。
// @Tags         admin (管理)
// @Produce      json
// @Param        partition query string true "队列分区" Enums(submissions,revisions)
// @Param        page query int false "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        pageSize query int false "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.ModerationQueueResponseWrapper "成功响应，包含队列条目和总数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/queue [get]
func (ctrl *PostAdminController) GetModerationQueue(c *gin.Context) {
	partition := service.QueuePartition(c.DefaultQuery("partition", string(service.PartitionSubmissions)))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	queueVO, err := ctrl.queueService.GetQueue(c.Request.Context(), caller, partition, (page-1)*pageSize, pageSize)
	if err != nil {
		respondServiceError(c, err, "获取审核队列失败")
		return
	}
	response.RespondSuccess(c, queueVO, "审核队列获取成功")
}

// GetQueueStats 获取审核看板计数
// @Summary      获取审核看板计数 (审核)
// @Description  获取各状态桶的博文数量快照。数值为近似值，由定时任务周期刷新，缓存未命中时回源重算。
// @Tags         admin (管理)
// @Produce      json
// @Success      200 {object} vo.QueueStatsResponseWrapper "成功响应，包含各桶计数"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/queue/stats [get]
func (ctrl *PostAdminController) GetQueueStats(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	statsVO, err := ctrl.queueService.GetQueueStats(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err, "获取审核看板计数失败")
		return
	}
	response.RespondSuccess(c, statsVO, "审核看板计数获取成功")
}

// RegisterRoutes 注册 PostAdminController 的路由
func (ctrl *PostAdminController) RegisterRoutes(group *gin.RouterGroup) {
	admin := group.Group("/admin")
	{
		admin.GET("/posts", ctrl.ListPostsByCondition)                // GET /admin/posts
		admin.POST("/posts/:post_id/approve", ctrl.ApprovePost)       // POST /admin/posts/{id}/approve
		admin.POST("/posts/:post_id/reject", ctrl.RejectPost)         // POST /admin/posts/{id}/reject
		admin.POST("/posts/:post_id/unpublish", ctrl.UnpublishPost)   // POST /admin/posts/{id}/unpublish
		admin.GET("/queue", ctrl.GetModerationQueue)                  // GET /admin/queue
		admin.GET("/queue/stats", ctrl.GetQueueStats)                 // GET /admin/queue/stats
	}
}
