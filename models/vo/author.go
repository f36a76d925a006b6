package vo

import "github.com/Xushengqwer/blog_service/models/entities"

// AuthorVO 作者信息视图对象，数据来自本地 authors 读模型
type AuthorVO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// MapAuthorToVO 将作者读模型转换为视图对象
func MapAuthorToVO(author *entities.Author) *AuthorVO {
	if author == nil {
		return nil
	}
	return &AuthorVO{
		UserID:   author.ID,
		Username: author.Username,
		Avatar:   author.Avatar,
	}
}
