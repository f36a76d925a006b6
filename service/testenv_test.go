package service

import (
	"context"
	"sync"
	"testing"

	sharedConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// memoryStatsCache 是 QueueStatsCache 的内存实现，测试中替代 Redis。
type memoryStatsCache struct {
	mu    sync.Mutex
	stats *vo.QueueStatsVO
}

func (c *memoryStatsCache) GetQueueStats(_ context.Context) (*vo.QueueStatsVO, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return nil, myErrors.ErrCacheMiss
	}
	snapshot := *c.stats
	return &snapshot, nil
}

func (c *memoryStatsCache) SetQueueStats(_ context.Context, stats *vo.QueueStatsVO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := *stats
	c.stats = &snapshot
	return nil
}

// testEnv 聚合一套完整的服务栈，数据库为内存 SQLite。
type testEnv struct {
	db         *gorm.DB
	postRepo   mysql.PostRepository
	detailRepo mysql.PostDetailRepository
	adminRepo  mysql.PostAdminRepository
	authorRepo mysql.AuthorRepository
	statsCache *memoryStatsCache

	postSvc     PostService
	adminSvc    PostAdminService
	revisionSvc RevisionService
	queueSvc    ModerationQueueService
	listSvc     PostListService
	authorSvc   AuthorService
}

// testLogger 构造一个只输出错误级别日志的 logger，避免测试输出被刷屏。
func testLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(sharedConfig.ZapConfig{Level: "error", Encoding: "console"})
	require.NoError(t, err, "初始化测试 logger 失败")
	return logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "打开内存 SQLite 失败")
	// 内存库绑定在单个连接上，连接池扩容会拿到空库。
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.Post{},
		&entities.PostDetail{},
		&entities.Author{},
	))

	// 事件发送是异步尽力而为的，指向不可达的 broker 即可覆盖失败路径。
	kafkaProducer := producer.NewKafkaProducer(appConfig.KafkaConfig{
		Brokers: []string{"127.0.0.1:1"},
		Topics: appConfig.Topics{
			PostPendingReview:  "test_post_pending_review",
			PostPublished:      "test_post_published",
			RevisionPending:    "test_revision_pending",
			PostDeleted:        "test_post_deleted",
			UserProfileUpdated: "test_user_profile_updated",
		},
	}, logger)

	postRepo := mysql.NewPostRepository(db, logger)
	detailRepo := mysql.NewPostDetailRepository(db, logger)
	adminRepo := mysql.NewPostAdminRepository(db, logger)
	authorRepo := mysql.NewAuthorRepository(db, logger)
	statsCache := &memoryStatsCache{}

	analyzer := dependencies.NewContentAnalyzer()
	slugAllocator := NewSlugAllocator(postRepo, logger)
	authorSvc := NewAuthorService(authorRepo, logger)

	return &testEnv{
		db:         db,
		postRepo:   postRepo,
		detailRepo: detailRepo,
		adminRepo:  adminRepo,
		authorRepo: authorRepo,
		statsCache: statsCache,

		postSvc:     NewPostService(db, postRepo, detailRepo, authorSvc, slugAllocator, analyzer, kafkaProducer, logger),
		adminSvc:    NewPostAdminService(db, postRepo, adminRepo, kafkaProducer, logger),
		revisionSvc: NewRevisionService(db, postRepo, adminRepo, detailRepo, slugAllocator, analyzer, kafkaProducer, logger),
		queueSvc:    NewModerationQueueService(adminRepo, statsCache, authorSvc, logger),
		listSvc:     NewPostListService(postRepo, detailRepo, authorSvc, logger),
		authorSvc:   authorSvc,
	}
}

func newAuthorIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New().String(), Role: auth.RoleAuthor}
}

func newEditorIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New().String(), Role: auth.RoleEditor}
}

// mustCreatePost 以给定作者身份投稿一篇博文，新建即为待审核状态。
func (e *testEnv) mustCreatePost(t *testing.T, author auth.Identity, title string) *vo.PostDetailVO {
	t.Helper()
	created, err := e.postSvc.CreatePost(context.Background(), author, &dto.CreatePostRequest{
		Title:    title,
		Excerpt:  "测试摘要",
		Body:     "这是测试正文，a quick brown fox jumps over the lazy dog.",
		Category: "engineering",
		Tags:     []string{"go", "testing"},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	return created
}

// mustPublishPost 投稿并批准，返回已发布状态的博文。
func (e *testEnv) mustPublishPost(t *testing.T, author auth.Identity, editor auth.Identity, title string) *entities.Post {
	t.Helper()
	created := e.mustCreatePost(t, author, title)
	require.NoError(t, e.adminSvc.ApprovePost(context.Background(), editor, created.ID))
	return e.mustGetPost(t, created.ID)
}

func (e *testEnv) mustGetPost(t *testing.T, id uint64) *entities.Post {
	t.Helper()
	post, err := e.postRepo.GetPostByID(context.Background(), id)
	require.NoError(t, err)
	return post
}

func (e *testEnv) mustGetDetail(t *testing.T, postID uint64) *entities.PostDetail {
	t.Helper()
	detail, err := e.detailRepo.GetPostDetailByPostID(context.Background(), postID)
	require.NoError(t, err)
	return detail
}

func (e *testEnv) mustRegisterAuthor(t *testing.T, identity auth.Identity, username string) {
	t.Helper()
	require.NoError(t, e.authorRepo.UpsertAuthor(context.Background(), &entities.Author{
		ID:       identity.UserID,
		Username: username,
		Avatar:   "https://example.com/avatar.png",
	}))
}
