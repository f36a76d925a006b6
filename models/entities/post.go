package entities

import (
	"database/sql"
	"time"

	"github.com/Xushengqwer/go-common/models/entities"
	"github.com/Xushengqwer/go-common/models/enums"
)

// Post 博文简略实体
// - 使用场景: 表示博文列表页与审核队列的数据，存储标题、slug、摘要、作者、状态等
// - 表名: posts (GORM 默认使用结构体名复数形式)
// - 正文 (Body) 与草稿覆盖层 (DraftOverlay) 体积较大，拆分到 PostDetail 表
type Post struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 标题，必填，最大长度255个字符
	Title string `gorm:"type:varchar(255);not null"`

	// Slug，由标题派生的 URL 安全标识
	// - 创建时通过 SlugAllocator 做查询级的去重（尽力而为，不是数据库唯一约束，
	//   并发创建同名标题仍可能产生重复，见 service/slug.go）
	// - 发布后应视为稳定标识，对外读路径按 slug 查询
	Slug string `gorm:"type:varchar(255);not null;index"`

	// 摘要，列表页展示用，必填
	Excerpt string `gorm:"type:varchar(500);not null"`

	// 分类，必填
	Category string `gorm:"type:varchar(100);not null"`

	// 标签列表，有序字符串集合，JSON 序列化存储
	Tags []string `gorm:"serializer:json;type:json"`

	// 封面图引用，可选
	// - 只存储外部引用（URL 或对象键），图片的上传与存储由独立服务负责
	FeaturedImage string `gorm:"type:varchar(255)"`

	// 作者ID，关联用户服务，创建后不再变更
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 状态，枚举类型：0=待审核, 1=已发布, 2=已拒绝
	Status enums.Status `gorm:"type:int;default:0;index"`

	// 拒绝原因，仅当 Status = Rejected 时非 NULL
	// - 类型: sql.NullString，用于区分 NULL 和空字符串
	RejectionReason sql.NullString `gorm:"type:varchar(255);comment:拒绝原因"`

	// 派生指标，提交时由 ContentAnalyzer 根据正文计算，之后不自动重算
	WordCount       int `gorm:"type:int;default:0"`
	ReadTimeMinutes int `gorm:"type:int;default:0"`

	// 生命周期时间戳，由服务端单调赋值
	// - 不指定列类型，由各方言驱动自行映射（MySQL 下即 datetime(3)）
	PublishedAt *time.Time
	RejectedAt  *time.Time

	// HasDraftOverlay 标识已发布博文是否挂有待审的草稿覆盖层
	// - 不变式: HasDraftOverlay = true 当且仅当 PostDetail.DraftOverlay 非 NULL，
	//   且两者只在 Status = 已发布 时合法（下架后覆盖层保留但处于休眠状态）
	// - 覆盖层内容本身存储在 PostDetail 表，此标志用于审核队列的快速筛选
	HasDraftOverlay bool `gorm:"type:tinyint(1);default:0;index"`
}
