package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// resolveConcurrencyLimit 批量解析作者信息时的并发上限
const resolveConcurrencyLimit = 8

// AuthorService 定义了作者信息解析的业务逻辑接口。
// - 数据来自用户服务事件同步出的本地读模型。
type AuthorService interface {
	// GetAuthorByID 解析单个作者的展示信息。
	// - 读模型中不存在时返回 nil（作者未知），不视为错误。
	GetAuthorByID(ctx context.Context, userID string) (*vo.AuthorVO, error)

	// ResolveAuthors 批量解析一页博文引用到的作者信息。
	// - 先对作者 ID 去重，再按去重后的集合并发查询，
	//   避免逐篇博文查一次的 N+1 模式。
	// - 返回 authorID 到展示信息的映射，未知作者不出现在映射中。
	ResolveAuthors(ctx context.Context, posts []*entities.Post) (map[string]*vo.AuthorVO, error)
}

// authorService 是 AuthorService 接口的具体实现。
type authorService struct {
	authorRepo mysql.AuthorRepository
	logger     *core.ZapLogger
}

// NewAuthorService 是 authorService 的构造函数。
func NewAuthorService(authorRepo mysql.AuthorRepository, logger *core.ZapLogger) AuthorService {
	return &authorService{
		authorRepo: authorRepo,
		logger:     logger,
	}
}

// GetAuthorByID 实现单个作者解析。
func (s *authorService) GetAuthorByID(ctx context.Context, userID string) (*vo.AuthorVO, error) {
	author, err := s.authorRepo.GetAuthorByID(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return vo.MapAuthorToVO(author), nil
}

// ResolveAuthors 实现批量作者解析。
func (s *authorService) ResolveAuthors(ctx context.Context, posts []*entities.Post) (map[string]*vo.AuthorVO, error) {
	// 1. 收集去重后的作者 ID 集合。
	idSet := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if p.AuthorID != "" {
			idSet[p.AuthorID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return map[string]*vo.AuthorVO{}, nil
	}

	// 2. 信号量限并发，按去重集合逐个查询。
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, resolveConcurrencyLimit)
		result  = make(map[string]*vo.AuthorVO, len(idSet))
		loadErr error
	)
	for id := range idSet {
		wg.Add(1)
		sem <- struct{}{}
		go func(userID string) {
			defer wg.Done()
			defer func() { <-sem }()

			author, err := s.authorRepo.GetAuthorByID(ctx, userID)
			if err != nil {
				if errors.Is(err, commonerrors.ErrRepoNotFound) {
					// 读模型尚未同步到该作者，跳过即可。
					return
				}
				mu.Lock()
				if loadErr == nil {
					loadErr = err
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			result[userID] = vo.MapAuthorToVO(author)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	if loadErr != nil {
		s.logger.Error("批量解析作者信息失败", zap.Error(loadErr))
		return nil, loadErr
	}
	return result, nil
}
