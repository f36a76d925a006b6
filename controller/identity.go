package controller

import (
	"errors"
	"net/http"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// userRoleHeader 网关透传调用者角色使用的请求头
const userRoleHeader = "X-User-Role"

// identityFromContext 从 gin.Context 组装调用者身份。
// - UserID 由网关鉴权后通过上下文中间件注入。
// - 角色从透传请求头解析，未知角色降级为普通作者。
// - 取不到有效 UserID 时直接写 401 响应并返回 false。
func identityFromContext(c *gin.Context) (auth.Identity, bool) {
	userIDValue, exists := c.Get(string(constants.UserIDKey))
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息 (Context Key Not Found)")
		return auth.Identity{}, false
	}
	userID, ok := userIDValue.(string)
	if !ok || userID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取有效的用户 ID (Invalid UserID in Context)")
		return auth.Identity{}, false
	}

	return auth.Identity{
		UserID: userID,
		Role:   auth.ParseUserRole(c.GetHeader(userRoleHeader)),
	}, true
}

// respondServiceError 将服务层错误统一映射为 HTTP 响应。
// - 业务错误族（校验/越权/状态冲突/未找到）各自映射到明确的状态码，
//   其余一律按服务器内部错误处理。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, myErrors.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, myErrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, "无权执行该操作")
	case errors.Is(err, myErrors.ErrInvalidTransition), errors.Is(err, myErrors.ErrNoPendingRevision):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "博文不存在")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, fallbackMsg)
	}
}
