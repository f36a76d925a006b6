package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/auth"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
)

// seedCategories 测试数据使用的分类池
var seedCategories = []string{"engineering", "product", "security", "tutorial", "company"}

// Seed 通过服务层填充测试数据，让每条数据都走完整的业务校验。
// 生成的博文覆盖所有状态：约一半保持待审核，其余被批准或拒绝，
// 部分已发布的博文还会挂上待审修订稿，方便联调审核队列。
func Seed(
	ctx context.Context,
	postSvc service.PostService,
	adminSvc service.PostAdminService,
	revisionSvc service.RevisionService,
	authorRepo mysql.AuthorRepository,
	logger *core.ZapLogger,
	numPosts int,
) {
	logger.Info("开始填充测试数据 (通过服务层)...", zap.Int("数量", numPosts))

	// 审核动作统一用一个虚构的编辑身份执行。
	reviewer := auth.Identity{UserID: uuid.New().String(), Role: auth.RoleEditor}

	// 先准备一小批作者，模拟用户服务已同步过来的读模型。
	authorCount := numPosts/5 + 1
	authors := make([]auth.Identity, 0, authorCount)
	for i := 0; i < authorCount; i++ {
		author := auth.Identity{UserID: uuid.New().String(), Role: auth.RoleAuthor}
		err := authorRepo.UpsertAuthor(ctx, &entities.Author{
			ID:       author.UserID,
			Username: gofakeit.Username(),
			Avatar:   gofakeit.ImageURL(100, 100),
		})
		if err != nil {
			logger.Error("写入测试作者失败", zap.Error(err), zap.String("authorID", author.UserID))
			continue
		}
		authors = append(authors, author)
	}
	if len(authors) == 0 {
		logger.Error("没有可用的测试作者，终止填充")
		return
	}

	var wg sync.WaitGroup
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			author := authors[itemIndex%len(authors)]
			createReq := &dto.CreatePostRequest{
				Title:         strings.TrimSuffix(gofakeit.Sentence(gofakeit.Number(4, 9)), "."),
				Excerpt:       gofakeit.Sentence(gofakeit.Number(10, 20)),
				Body:          gofakeit.Paragraph(4, 6, 30, "\n\n"),
				Category:      seedCategories[gofakeit.Number(0, len(seedCategories)-1)],
				Tags:          []string{gofakeit.Word(), gofakeit.Word()},
				FeaturedImage: gofakeit.ImageURL(800, 400),
			}

			created, err := postSvc.CreatePost(ctx, author, createReq)
			if err != nil {
				logger.Error(fmt.Sprintf("创建博文 %d/%d 失败", itemIndex+1, numPosts),
					zap.Error(err),
					zap.String("title", createReq.Title))
				return
			}

			// 按概率推进状态：50% 保持待审核，30% 发布，20% 拒绝。
			roll := gofakeit.Number(1, 10)
			switch {
			case roll <= 3:
				if err := adminSvc.ApprovePost(ctx, reviewer, created.ID); err != nil {
					logger.Error("批准测试博文失败", zap.Error(err), zap.Uint64("postID", created.ID))
					return
				}
				// 已发布的博文中再抽一半挂上待审修订稿。
				if gofakeit.Bool() {
					revReq := &dto.SubmitRevisionRequest{
						Title:         created.Title + " (updated)",
						Excerpt:       gofakeit.Sentence(gofakeit.Number(10, 20)),
						Body:          gofakeit.Paragraph(4, 6, 30, "\n\n"),
						Category:      createReq.Category,
						Tags:          createReq.Tags,
						FeaturedImage: createReq.FeaturedImage,
					}
					if _, err := revisionSvc.SubmitRevision(ctx, author, created.ID, revReq); err != nil {
						logger.Error("提交测试修订稿失败", zap.Error(err), zap.Uint64("postID", created.ID))
					}
				}
			case roll <= 5:
				if err := adminSvc.RejectPost(ctx, reviewer, created.ID, gofakeit.Sentence(8)); err != nil {
					logger.Error("拒绝测试博文失败", zap.Error(err), zap.Uint64("postID", created.ID))
				}
			default:
				// 保持待审核
			}

			logger.Info(fmt.Sprintf("成功创建博文 %d/%d", itemIndex+1, numPosts),
				zap.Uint64("post_id", created.ID),
				zap.String("title", created.Title))
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕 (通过服务层)。")
}
