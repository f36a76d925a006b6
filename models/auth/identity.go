package auth

// UserRole 调用者角色，由网关透传，本服务不管理会话
type UserRole string

const (
	RoleAuthor UserRole = "author" // 普通作者
	RoleEditor UserRole = "editor" // 编辑，具备审核能力
	RoleAdmin  UserRole = "admin"  // 管理员，具备审核与全量管理能力
)

// ParseUserRole 将透传的角色字符串解析为 UserRole。
// - 未知或空值一律降级为 RoleAuthor（最小权限）
func ParseUserRole(raw string) UserRole {
	switch UserRole(raw) {
	case RoleEditor:
		return RoleEditor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleAuthor
	}
}

// Capability 操作能力。
// 每个写操作在服务层用能力谓词做前置检查，而不是在各处散落的角色字符串比较。
type Capability string

const (
	// CapReviewContent 审核内容：批准/拒绝初次投稿与草稿覆盖层、下架、查看审核队列
	CapReviewContent Capability = "review_content"

	// CapManageAnyPost 管理任意博文：不受归属与状态限制的编辑/删除/列表
	CapManageAnyPost Capability = "manage_any_post"
)

// roleCapabilities 角色到能力集的映射。
// 编辑与管理员都是审核者；作者只能操作自己的博文。
var roleCapabilities = map[UserRole]map[Capability]struct{}{
	RoleEditor: {
		CapReviewContent: {},
		CapManageAnyPost: {},
	},
	RoleAdmin: {
		CapReviewContent: {},
		CapManageAnyPost: {},
	},
}

// Identity 一次请求的调用者身份，由控制器从网关透传信息组装后传入服务层。
type Identity struct {
	UserID string
	Role   UserRole
}

// Can 判断调用者是否具备指定能力。
func (i Identity) Can(c Capability) bool {
	caps, ok := roleCapabilities[i.Role]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// Owns 判断调用者是否为指定作者本人。
func (i Identity) Owns(authorID string) bool {
	return i.UserID != "" && i.UserID == authorID
}
