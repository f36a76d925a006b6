package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/models/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func strPtr(s string) *string { return &s }

func TestPostService_CreatePost(t *testing.T) {
	env := newTestEnv(t)
	author := newAuthorIdentity()

	created := env.mustCreatePost(t, author, "My First Post")

	assert.Equal(t, enums.Pending, created.Status, "新建博文应为待审核状态")
	assert.Equal(t, "my-first-post", created.Slug)
	assert.Equal(t, author.UserID, created.AuthorID)
	assert.Nil(t, created.PublishedAt)
	assert.False(t, created.HasDraftOverlay)
	assert.Greater(t, created.WordCount, 0)
	assert.GreaterOrEqual(t, created.ReadTimeMinutes, 1)

	// 详情记录与主表在同一事务内写入。
	detail := env.mustGetDetail(t, created.ID)
	assert.NotEmpty(t, detail.Body)
	assert.Nil(t, detail.DraftOverlay)
}

func TestPostService_CreatePost_ContentContract(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()

	base := func() *dto.CreatePostRequest {
		return &dto.CreatePostRequest{
			Title:    "Complete Post",
			Excerpt:  "摘要",
			Body:     "正文",
			Category: "engineering",
		}
	}

	cases := []struct {
		name   string
		mutate func(*dto.CreatePostRequest)
	}{
		{"标题为空", func(r *dto.CreatePostRequest) { r.Title = "" }},
		{"摘要为空", func(r *dto.CreatePostRequest) { r.Excerpt = "" }},
		{"正文为空", func(r *dto.CreatePostRequest) { r.Body = "" }},
		{"分类为空", func(r *dto.CreatePostRequest) { r.Category = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(req)
			_, err := env.postSvc.CreatePost(ctx, author, req)
			assert.ErrorIs(t, err, myErrors.ErrValidation)
		})
	}

	// 校验失败的投稿不应有任何数据落库。
	var count int64
	require.NoError(t, env.db.Model(&entities.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostAdminService_ApprovePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	created := env.mustCreatePost(t, author, "Awaiting Review")

	t.Run("作者没有审核能力", func(t *testing.T) {
		assert.ErrorIs(t, env.adminSvc.ApprovePost(ctx, author, created.ID), myErrors.ErrForbidden)
	})

	t.Run("编辑批准后博文发布", func(t *testing.T) {
		require.NoError(t, env.adminSvc.ApprovePost(ctx, editor, created.ID))

		post := env.mustGetPost(t, created.ID)
		assert.Equal(t, enums.Approved, post.Status)
		require.NotNil(t, post.PublishedAt, "批准时应记录发布时间")
	})

	t.Run("重复批准视为非法流转", func(t *testing.T) {
		assert.ErrorIs(t, env.adminSvc.ApprovePost(ctx, editor, created.ID), myErrors.ErrInvalidTransition)
	})

	t.Run("批准不存在的博文", func(t *testing.T) {
		assert.ErrorIs(t, env.adminSvc.ApprovePost(ctx, editor, 99999), commonerrors.ErrRepoNotFound)
	})
}

func TestPostAdminService_RejectPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	created := env.mustCreatePost(t, author, "Needs Work")

	t.Run("拒绝必须附非空原因", func(t *testing.T) {
		err := env.adminSvc.RejectPost(ctx, editor, created.ID, "")
		assert.ErrorIs(t, err, myErrors.ErrValidation)

		// 校验失败时状态不应被改动。
		assert.Equal(t, enums.Pending, env.mustGetPost(t, created.ID).Status)
	})

	t.Run("拒绝后记录原因与时间", func(t *testing.T) {
		require.NoError(t, env.adminSvc.RejectPost(ctx, editor, created.ID, "正文缺少示例代码"))

		post := env.mustGetPost(t, created.ID)
		assert.Equal(t, enums.Rejected, post.Status)
		require.True(t, post.RejectionReason.Valid)
		assert.Equal(t, "正文缺少示例代码", post.RejectionReason.String)
		assert.NotNil(t, post.RejectedAt)
	})

	t.Run("已拒绝的博文不能再次拒绝", func(t *testing.T) {
		err := env.adminSvc.RejectPost(ctx, editor, created.ID, "再来一次")
		assert.ErrorIs(t, err, myErrors.ErrInvalidTransition)
	})
}

func TestPostService_UpdatePost_EditPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()

	created := env.mustCreatePost(t, author, "Editable Draft")

	t.Run("非作者本人不能编辑", func(t *testing.T) {
		_, err := env.postSvc.UpdatePost(ctx, newAuthorIdentity(), created.ID, &dto.UpdatePostRequest{
			Excerpt: strPtr("改写摘要"),
		})
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("标题与摘要不能改为空", func(t *testing.T) {
		_, err := env.postSvc.UpdatePost(ctx, author, created.ID, &dto.UpdatePostRequest{
			Title: strPtr(""),
		})
		assert.ErrorIs(t, err, myErrors.ErrValidation)

		_, err = env.postSvc.UpdatePost(ctx, author, created.ID, &dto.UpdatePostRequest{
			Excerpt: strPtr(""),
		})
		assert.ErrorIs(t, err, myErrors.ErrValidation)
	})

	t.Run("标题变更时重新派生 slug", func(t *testing.T) {
		updated, err := env.postSvc.UpdatePost(ctx, author, created.ID, &dto.UpdatePostRequest{
			Title: strPtr("Renamed Draft"),
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed-draft", updated.Slug)
		assert.Equal(t, enums.Pending, updated.Status, "编辑待审核博文不改变状态")
	})

	t.Run("正文变更时重算派生指标", func(t *testing.T) {
		before := env.mustGetPost(t, created.ID)
		updated, err := env.postSvc.UpdatePost(ctx, author, created.ID, &dto.UpdatePostRequest{
			Body: strPtr("one two three four five"),
		})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.WordCount)
		assert.NotEqual(t, before.WordCount, updated.WordCount)
		assert.Equal(t, "one two three four five", env.mustGetDetail(t, created.ID).Body)
	})
}

func TestPostService_UpdatePost_PublishedNotEditable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	post := env.mustPublishPost(t, author, editor, "Published Piece")

	// 已发布的博文必须走草稿覆盖层，直接编辑是非法流转。
	_, err := env.postSvc.UpdatePost(ctx, author, post.ID, &dto.UpdatePostRequest{
		Title: strPtr("Sneaky Edit"),
	})
	assert.ErrorIs(t, err, myErrors.ErrInvalidTransition)

	assert.Equal(t, "Published Piece", env.mustGetPost(t, post.ID).Title)
}

func TestPostService_UpdatePost_Resubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	created := env.mustCreatePost(t, author, "Rejected Then Fixed")

	t.Run("待审核博文不能重新提交", func(t *testing.T) {
		_, err := env.postSvc.UpdatePost(ctx, author, created.ID, &dto.UpdatePostRequest{Resubmit: true})
		assert.ErrorIs(t, err, myErrors.ErrInvalidTransition)
	})

	require.NoError(t, env.adminSvc.RejectPost(ctx, editor, created.ID, "结构混乱"))

	t.Run("重新提交回到待审核并清空拒绝信息", func(t *testing.T) {
		updated, err := env.postSvc.UpdatePost(ctx, author, created.ID, &dto.UpdatePostRequest{
			Body:     strPtr("重写后的正文 rewritten body"),
			Resubmit: true,
		})
		require.NoError(t, err)
		assert.Equal(t, enums.Pending, updated.Status)
		assert.Nil(t, updated.RejectionReason)

		post := env.mustGetPost(t, created.ID)
		assert.False(t, post.RejectionReason.Valid)
		assert.Nil(t, post.RejectedAt)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	t.Run("作者可删除待审核的博文", func(t *testing.T) {
		created := env.mustCreatePost(t, author, "Delete Pending")
		require.NoError(t, env.postSvc.DeletePost(ctx, author, created.ID))

		_, err := env.postRepo.GetPostByID(ctx, created.ID)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
		_, err = env.detailRepo.GetPostDetailByPostID(ctx, created.ID)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound, "详情应随主表一同删除")
	})

	t.Run("作者可删除已拒绝的博文", func(t *testing.T) {
		created := env.mustCreatePost(t, author, "Delete Rejected")
		require.NoError(t, env.adminSvc.RejectPost(ctx, editor, created.ID, "不合适"))
		assert.NoError(t, env.postSvc.DeletePost(ctx, author, created.ID))
	})

	t.Run("作者不能删除已发布的博文", func(t *testing.T) {
		post := env.mustPublishPost(t, author, editor, "Delete Published")
		assert.ErrorIs(t, env.postSvc.DeletePost(ctx, author, post.ID), myErrors.ErrForbidden)

		// 审核者不受此限制。
		assert.NoError(t, env.postSvc.DeletePost(ctx, editor, post.ID))
	})

	t.Run("旁人不能删除别人的博文", func(t *testing.T) {
		created := env.mustCreatePost(t, author, "Not Yours")
		assert.ErrorIs(t, env.postSvc.DeletePost(ctx, newAuthorIdentity(), created.ID), myErrors.ErrForbidden)
	})
}

func TestPostService_GetPostDetailByID_Visibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()
	stranger := newAuthorIdentity()

	created := env.mustCreatePost(t, author, "Hidden Until Approved")

	t.Run("未发布内容对旁人按未找到处理", func(t *testing.T) {
		_, err := env.postSvc.GetPostDetailByID(ctx, stranger, created.ID)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})

	t.Run("作者与审核者可见未发布内容", func(t *testing.T) {
		own, err := env.postSvc.GetPostDetailByID(ctx, author, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, own.ID)

		_, err = env.postSvc.GetPostDetailByID(ctx, editor, created.ID)
		assert.NoError(t, err)
	})

	t.Run("覆盖层仅对特权身份填充", func(t *testing.T) {
		require.NoError(t, env.adminSvc.ApprovePost(ctx, editor, created.ID))
		_, err := env.revisionSvc.SubmitRevision(ctx, author, created.ID, &dto.SubmitRevisionRequest{
			Title:    "Hidden Until Approved",
			Excerpt:  "新摘要",
			Body:     "新正文",
			Category: "engineering",
		})
		require.NoError(t, err)

		public, err := env.postSvc.GetPostDetailByID(ctx, stranger, created.ID)
		require.NoError(t, err)
		assert.Nil(t, public.DraftOverlay, "公开读路径不暴露待审覆盖层")

		own, err := env.postSvc.GetPostDetailByID(ctx, author, created.ID)
		require.NoError(t, err)
		assert.NotNil(t, own.DraftOverlay)
	})
}
