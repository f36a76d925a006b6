package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// RevisionController 定义草稿覆盖层（修订稿）的控制器
type RevisionController struct {
	revisionService service.RevisionService
}

// NewRevisionController 构造函数，用于创建 RevisionController 实例
func NewRevisionController(revisionService service.RevisionService) *RevisionController {
	return &RevisionController{
		revisionService: revisionService,
	}
}

// SubmitRevision 为已发布博文提交修订稿
// @Summary      提交修订稿
// @Description  为自己已发布的博文提交一份完整替换稿。对外内容保持不变，替换稿进入审核队列；重复提交会整体覆盖旧稿。
// @Tags         revisions (修订稿)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Param        request body dto.SubmitRevisionRequest true "替换稿内容（全字段提交）"
// @Success      200 {object} vo.BaseResponseWrapper "提交成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "非作者本人且无管理权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "博文未发布，不能提交修订稿"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id}/revision [put]
func (ctrl *RevisionController) SubmitRevision(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	var req dto.SubmitRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求体: "+err.Error())
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	revisionVO, err := ctrl.revisionService.SubmitRevision(c.Request.Context(), caller, postID, &req)
	if err != nil {
		respondServiceError(c, err, "提交修订稿失败")
		return
	}
	response.RespondSuccess(c, revisionVO, "修订稿提交成功，已进入审核队列")
}

// ApproveRevision 批准修订稿
// @Summary      批准修订稿 (审核)
// @Description  将修订稿全部字段落为对外内容并清空修订稿。博文保持已发布，发布时间不变。
// @Tags         revisions (修订稿)
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "批准成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "没有待审的修订稿"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/{post_id}/revision/approve [post]
func (ctrl *RevisionController) ApproveRevision(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.revisionService.ApproveRevision(c.Request.Context(), caller, postID); err != nil {
		respondServiceError(c, err, "批准修订稿失败")
		return
	}
	response.RespondSuccess[any](c, nil, "修订稿已批准并生效")
}

// RejectRevision 丢弃修订稿
// @Summary      丢弃修订稿 (审核)
// @Description  丢弃待审的修订稿，对外内容不受影响。丢弃无需附原因。
// @Tags         revisions (修订稿)
// @Produce      json
// @Param        post_id path uint64 true "博文 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "丢弃成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "无审核权限"
// @Failure      404 {object} vo.BaseResponseWrapper "博文不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "没有待审的修订稿"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/{post_id}/revision/reject [post]
func (ctrl *RevisionController) RejectRevision(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的博文 ID")
		return
	}

	caller, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.revisionService.RejectRevision(c.Request.Context(), caller, postID); err != nil {
		respondServiceError(c, err, "丢弃修订稿失败")
		return
	}
	response.RespondSuccess[any](c, nil, "修订稿已丢弃")
}

// RegisterRoutes 注册 RevisionController 的路由
func (ctrl *RevisionController) RegisterRoutes(group *gin.RouterGroup) {
	group.PUT("/posts/:post_id/revision", ctrl.SubmitRevision) // PUT /api/v1/blog/posts/:post_id/revision

	adminRevisions := group.Group("/admin/posts/:post_id/revision")
	{
		adminRevisions.POST("/approve", ctrl.ApproveRevision) // POST /admin/posts/:post_id/revision/approve
		adminRevisions.POST("/reject", ctrl.RejectRevision)   // POST /admin/posts/:post_id/revision/reject
	}
}
