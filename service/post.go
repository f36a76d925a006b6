package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PostService 定义了博文生命周期中作者侧的业务逻辑接口。
type PostService interface {
	// CreatePost 处理作者投稿的业务流程。
	// - 校验必填字段，计算派生指标，分配 slug。
	// - 博文与详情在同一事务内写入，新建即为待审核状态。
	// - 成功后异步发送待审核事件。
	CreatePost(ctx context.Context, caller auth.Identity, req *dto.CreatePostRequest) (*vo.PostDetailVO, error)

	// UpdatePost 处理作者编辑未发布博文（待审核或已拒绝）的流程。
	// - 仅作者本人或具备管理能力的调用者可操作。
	// - 已发布的博文不能直接编辑，必须走草稿覆盖层（RevisionService）。
	// - 已拒绝的博文可通过 Resubmit 标志显式回到待审核状态，
	//   引擎不做自动流转，是否重新提交由调用方决定。
	UpdatePost(ctx context.Context, caller auth.Identity, postID uint64, req *dto.UpdatePostRequest) (*vo.PostDetailVO, error)

	// DeletePost 删除博文。
	// - 审核者任何时候可删；作者本人仅可删除未发布（待审核或已拒绝）的博文。
	// - 博文与详情在同一事务内软删除，成功后异步发送删除事件。
	DeletePost(ctx context.Context, caller auth.Identity, postID uint64) error

	// GetPostDetailByID 获取单篇博文的完整详情。
	// - 已发布的博文对所有人可见；其他状态仅作者本人与审核者可见。
	// - 草稿覆盖层仅对作者本人与审核者填充。
	GetPostDetailByID(ctx context.Context, caller auth.Identity, postID uint64) (*vo.PostDetailVO, error)
}

// postService 是 PostService 接口的具体实现。
type postService struct {
	postRepo       mysql.PostRepository
	postDetailRepo mysql.PostDetailRepository
	authorSvc      AuthorService
	slugAllocator  SlugAllocator
	analyzer       dependencies.ContentAnalyzer
	db             *gorm.DB
	kafkaSvc       *producer.KafkaProducer
	logger         *core.ZapLogger
}

// NewPostService 是 postService 的构造函数，通过依赖注入初始化服务实例。
func NewPostService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	postDetailRepo mysql.PostDetailRepository,
	authorSvc AuthorService,
	slugAllocator SlugAllocator,
	analyzer dependencies.ContentAnalyzer,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) PostService {
	return &postService{
		postRepo:       postRepo,
		postDetailRepo: postDetailRepo,
		authorSvc:      authorSvc,
		slugAllocator:  slugAllocator,
		analyzer:       analyzer,
		db:             db,
		kafkaSvc:       kafkaSvc,
		logger:         logger,
	}
}

// validateContentPayload 校验内容契约：标题、摘要、正文、分类均不允许为空。
// - 投稿与修订稿提交共用；控制器层的 binding 只是第一道防线，
//   引擎自身不依赖它。
func validateContentPayload(title, excerpt, body, category string) error {
	switch {
	case title == "":
		return fmt.Errorf("%w: 标题不能为空", myErrors.ErrValidation)
	case excerpt == "":
		return fmt.Errorf("%w: 摘要不能为空", myErrors.ErrValidation)
	case body == "":
		return fmt.Errorf("%w: 正文不能为空", myErrors.ErrValidation)
	case category == "":
		return fmt.Errorf("%w: 分类不能为空", myErrors.ErrValidation)
	}
	return nil
}

// buildPostEventData 组装博文事件载荷。
func buildPostEventData(post *entities.Post) events.PostEventData {
	return events.PostEventData{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		Category:        post.Category,
		Tags:            post.Tags,
		AuthorID:        post.AuthorID,
		Status:          int(post.Status),
		WordCount:       post.WordCount,
		ReadTimeMinutes: post.ReadTimeMinutes,
		CreatedAt:       post.CreatedAt.UnixMilli(),
		UpdatedAt:       post.UpdatedAt.UnixMilli(),
	}
}

// CreatePost 实现作者投稿。
func (s *postService) CreatePost(ctx context.Context, caller auth.Identity, req *dto.CreatePostRequest) (*vo.PostDetailVO, error) {
	// 1. 必填字段校验：标题、摘要、正文、分类都不允许为空。
	if err := validateContentPayload(req.Title, req.Excerpt, req.Body, req.Category); err != nil {
		return nil, err
	}

	// 2. 计算派生指标并分配 slug。投稿时计算一次，之后不自动重算。
	wordCount, readTime := s.analyzer.Analyze(req.Body)
	slug, err := s.slugAllocator.Allocate(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}

	// 3. 博文与详情原子写入。
	var createdPost *entities.Post
	var createdDetail *entities.PostDetail
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &entities.Post{
			Title:           req.Title,
			Slug:            slug,
			Excerpt:         req.Excerpt,
			Category:        req.Category,
			Tags:            req.Tags,
			FeaturedImage:   req.FeaturedImage,
			AuthorID:        caller.UserID,
			Status:          enums.Pending, // 新建即待审核
			WordCount:       wordCount,
			ReadTimeMinutes: readTime,
		}
		if repoErr := s.postRepo.CreatePost(ctx, tx, post); repoErr != nil {
			return fmt.Errorf("创建博文失败: %w", repoErr)
		}
		createdPost = post

		detail := &entities.PostDetail{
			PostID: post.ID,
			Body:   req.Body,
		}
		if repoErr := s.postDetailRepo.CreatePostDetail(ctx, tx, detail); repoErr != nil {
			return fmt.Errorf("创建博文详情失败: %w", repoErr)
		}
		createdDetail = detail
		return nil
	})
	if err != nil {
		s.logger.Error("投稿事务失败", zap.Error(err), zap.String("authorID", caller.UserID))
		return nil, err
	}

	// 4. 异步通知审核侧，失败只记日志不影响投稿结果。
	go func() {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendPostPendingReviewEvent(bgCtx, buildPostEventData(createdPost)); kafkaErr != nil {
			s.logger.Error("发送博文待审核事件失败", zap.Error(kafkaErr), zap.Uint64("postID", createdPost.ID))
		}
	}()

	author, _ := s.authorSvc.GetAuthorByID(ctx, caller.UserID)
	return vo.MapPostDetailToVO(createdPost, createdDetail, author, true), nil
}

// UpdatePost 实现未发布博文的编辑。
func (s *postService) UpdatePost(ctx context.Context, caller auth.Identity, postID uint64, req *dto.UpdatePostRequest) (*vo.PostDetailVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(post.AuthorID) && !caller.Can(auth.CapManageAnyPost) {
		return nil, myErrors.ErrForbidden
	}

	// 1. 组装主表更新字段。部分更新下逐字段校验非空契约。
	updates := make(map[string]interface{})
	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: 标题不能为空", myErrors.ErrValidation)
		}
		if *req.Title != post.Title {
			updates["title"] = *req.Title
			// 标题变更时重新派生 slug，排除自身占用。
			newSlug, slugErr := s.slugAllocator.Allocate(ctx, *req.Title, postID)
			if slugErr != nil {
				return nil, slugErr
			}
			updates["slug"] = newSlug
		}
	}
	if req.Excerpt != nil {
		if *req.Excerpt == "" {
			return nil, fmt.Errorf("%w: 摘要不能为空", myErrors.ErrValidation)
		}
		updates["excerpt"] = *req.Excerpt
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, fmt.Errorf("%w: 分类不能为空", myErrors.ErrValidation)
		}
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if req.Body != nil {
		if *req.Body == "" {
			return nil, fmt.Errorf("%w: 正文不能为空", myErrors.ErrValidation)
		}
		wordCount, readTime := s.analyzer.Analyze(*req.Body)
		updates["word_count"] = wordCount
		updates["read_time_minutes"] = readTime
	}

	// 2. 已拒绝的博文显式重新提交时回到待审核，并按不变式清空拒绝信息。
	allowed := []enums.Status{enums.Pending, enums.Rejected}
	if req.Resubmit {
		if post.Status != enums.Rejected {
			return nil, fmt.Errorf("%w: 只有已拒绝的博文可以重新提交", myErrors.ErrInvalidTransition)
		}
		allowed = []enums.Status{enums.Rejected}
		updates["status"] = enums.Pending
		updates["rejection_reason"] = nil
		updates["rejected_at"] = nil
	}

	// 3. 主表与正文在同一事务内更新，状态条件在 WHERE 中原子生效。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, repoErr := s.postRepo.UpdateContentFields(ctx, tx, postID, allowed, updates)
		if repoErr != nil {
			return repoErr
		}
		if rows == 0 {
			// 并发下状态可能刚刚变化，回查区分“不存在”与“状态不允许”。
			if _, getErr := s.postRepo.GetPostByID(ctx, postID); getErr != nil {
				return getErr
			}
			return fmt.Errorf("%w: 已发布的博文不能直接编辑", myErrors.ErrInvalidTransition)
		}
		if req.Body != nil {
			if repoErr := s.postDetailRepo.UpdateBody(ctx, tx, postID, *req.Body); repoErr != nil {
				return repoErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. 重新提交的博文再次进入审核队列，异步通知审核侧。
	if req.Resubmit {
		if updated, getErr := s.postRepo.GetPostByID(ctx, postID); getErr == nil {
			go func() {
				bgCtx := context.Background()
				if kafkaErr := s.kafkaSvc.SendPostPendingReviewEvent(bgCtx, buildPostEventData(updated)); kafkaErr != nil {
					s.logger.Error("发送重新提交事件失败", zap.Error(kafkaErr), zap.Uint64("postID", postID))
				}
			}()
		}
	}

	return s.GetPostDetailByID(ctx, caller, postID)
}

// DeletePost 实现博文删除。
func (s *postService) DeletePost(ctx context.Context, caller auth.Identity, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	// 审核者任何时候可删；作者本人只能删除未发布的博文。
	if !caller.Can(auth.CapManageAnyPost) {
		if !caller.Owns(post.AuthorID) {
			return myErrors.ErrForbidden
		}
		if post.Status == enums.Approved {
			return fmt.Errorf("%w: 已发布的博文只能由审核者删除", myErrors.ErrForbidden)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if repoErr := s.postRepo.DeletePost(ctx, tx, postID); repoErr != nil {
			return repoErr
		}
		if repoErr := s.postDetailRepo.DeletePostDetail(ctx, tx, postID); repoErr != nil {
			return repoErr
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除博文事务失败", zap.Error(err), zap.Uint64("postID", postID))
		return err
	}

	go func() {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendPostDeleteEvent(bgCtx, postID); kafkaErr != nil {
			s.logger.Error("发送博文删除事件失败", zap.Error(kafkaErr), zap.Uint64("postID", postID))
		}
	}()
	return nil
}

// GetPostDetailByID 实现单篇博文详情查询。
func (s *postService) GetPostDetailByID(ctx context.Context, caller auth.Identity, postID uint64) (*vo.PostDetailVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	privileged := caller.Owns(post.AuthorID) || caller.Can(auth.CapReviewContent)
	if post.Status != enums.Approved && !privileged {
		// 未发布内容对外不暴露存在性，按未找到处理。
		return nil, commonerrors.ErrRepoNotFound
	}

	detail, err := s.postDetailRepo.GetPostDetailByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Error("博文缺失详情记录", zap.Uint64("postID", postID))
		}
		return nil, err
	}

	author, authorErr := s.authorSvc.GetAuthorByID(ctx, post.AuthorID)
	if authorErr != nil {
		// 作者读模型缺失不阻塞详情展示。
		s.logger.Warn("解析作者信息失败", zap.Error(authorErr), zap.String("authorID", post.AuthorID))
	}
	return vo.MapPostDetailToVO(post, detail, author, privileged), nil
}
