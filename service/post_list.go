package service

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/models/enums"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PostListService 定义了博文列表读路径的业务逻辑接口。
type PostListService interface {
	// ListPublished 公开浏览已发布的博文列表，可按分类与标签过滤。
	ListPublished(ctx context.Context, req *dto.ListPublishedRequestDTO) (*vo.ListPostsVO, error)

	// GetPublishedBySlug 公开按 slug 读取单篇已发布博文的详情。
	// - 覆盖层对公开读路径永远不可见。
	GetPublishedBySlug(ctx context.Context, slug string) (*vo.PostDetailVO, error)

	// GetMyPosts 作者查询自己的博文列表，可按状态过滤。
	// - 作者可见全部状态，包括已拒绝的博文及其拒绝原因。
	GetMyPosts(ctx context.Context, caller auth.Identity, req *dto.GetUserPostsRequestDTO) (*vo.ListPostsVO, error)
}

// postListService 是 PostListService 接口的具体实现。
type postListService struct {
	postRepo       mysql.PostRepository
	postDetailRepo mysql.PostDetailRepository
	authorSvc      AuthorService
	logger         *core.ZapLogger
}

// NewPostListService 是 postListService 的构造函数。
func NewPostListService(
	postRepo mysql.PostRepository,
	postDetailRepo mysql.PostDetailRepository,
	authorSvc AuthorService,
	logger *core.ZapLogger,
) PostListService {
	return &postListService{
		postRepo:       postRepo,
		postDetailRepo: postDetailRepo,
		authorSvc:      authorSvc,
		logger:         logger,
	}
}

// ListPublished 实现公开的已发布博文列表。
func (s *postListService) ListPublished(ctx context.Context, req *dto.ListPublishedRequestDTO) (*vo.ListPostsVO, error) {
	posts, total, err := s.postRepo.ListPublished(ctx, req.Category, req.Tag, req.GetOffset(), req.GetLimit())
	if err != nil {
		return nil, err
	}
	return &vo.ListPostsVO{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Total: total,
	}, nil
}

// GetPublishedBySlug 实现公开的按 slug 详情读取。
func (s *postListService) GetPublishedBySlug(ctx context.Context, slug string) (*vo.PostDetailVO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	detail, err := s.postDetailRepo.GetPostDetailByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	author, authorErr := s.authorSvc.GetAuthorByID(ctx, post.AuthorID)
	if authorErr != nil {
		s.logger.Warn("解析作者信息失败", zap.Error(authorErr), zap.String("authorID", post.AuthorID))
	}
	// 公开读路径不暴露覆盖层。
	return vo.MapPostDetailToVO(post, detail, author, false), nil
}

// GetMyPosts 实现作者自己的博文列表。
func (s *postListService) GetMyPosts(ctx context.Context, caller auth.Identity, req *dto.GetUserPostsRequestDTO) (*vo.ListPostsVO, error) {
	var status *enums.Status
	if req.Status != nil {
		st := enums.Status(*req.Status)
		status = &st
	}
	posts, total, err := s.postRepo.GetPostsByAuthor(ctx, caller.UserID, status, req.GetOffset(), req.GetLimit())
	if err != nil {
		return nil, err
	}
	return &vo.ListPostsVO{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Total: total,
	}, nil
}
