package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// PostDetail 博文详情实体
// - 使用场景: 存储博文的完整正文与草稿覆盖层，与 Post 一对一
// - 表名: post_details
type PostDetail struct {
	entities.BaseModel

	// 所属博文ID，一对一
	PostID uint64 `gorm:"not null;uniqueIndex"`

	// 正文，富文本编辑器产出的不透明载荷
	// - 本服务不解析其结构，只在提交时交给 ContentAnalyzer 计算字数/阅读时长
	Body string `gorm:"type:longtext;not null"`

	// DraftOverlay 草稿覆盖层，JSON 序列化存储
	// - 仅已发布博文会写入；包含全部可变内容字段的完整副本（含正文），
	//   审核通过时整体覆盖到 Post/PostDetail 的顶层字段
	// - NULL 表示没有待审修订，与 Post.HasDraftOverlay 在同一事务内保持一致
	DraftOverlay *Revision `gorm:"serializer:json;type:json"`
}
