package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/models/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/dto"
)

func TestPostListService_ListPublished(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	env.mustCreatePost(t, author, "List Pending Only")
	env.mustPublishPost(t, author, editor, "List Published One")
	env.mustPublishPost(t, author, editor, "List Published Two")

	t.Run("只返回已发布的博文", func(t *testing.T) {
		list, err := env.listSvc.ListPublished(ctx, &dto.ListPublishedRequestDTO{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, list.Total)
		for _, p := range list.Posts {
			assert.Equal(t, enums.Approved, p.Status)
		}
	})

	t.Run("按分类过滤", func(t *testing.T) {
		other := "product"
		list, err := env.listSvc.ListPublished(ctx, &dto.ListPublishedRequestDTO{Category: &other})
		require.NoError(t, err)
		assert.EqualValues(t, 0, list.Total)
	})
}

func TestPostListService_GetPublishedBySlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	published := env.mustPublishPost(t, author, editor, "Slug Readable")
	_, err := env.revisionSvc.SubmitRevision(ctx, author, published.ID, revisionRequest("Slug Readable v2"))
	require.NoError(t, err)

	t.Run("已发布博文按 slug 可读且不暴露覆盖层", func(t *testing.T) {
		detail, err := env.listSvc.GetPublishedBySlug(ctx, "slug-readable")
		require.NoError(t, err)
		assert.Equal(t, published.ID, detail.ID)
		assert.NotEmpty(t, detail.Body)
		assert.Nil(t, detail.DraftOverlay)
	})

	t.Run("未发布的 slug 对外不可见", func(t *testing.T) {
		pending := env.mustCreatePost(t, author, "Slug Hidden")
		_, err := env.listSvc.GetPublishedBySlug(ctx, pending.Slug)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})
}

func TestPostListService_GetMyPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	env.mustCreatePost(t, author, "Mine Pending")
	env.mustPublishPost(t, author, editor, "Mine Published")
	rejected := env.mustCreatePost(t, author, "Mine Rejected")
	require.NoError(t, env.adminSvc.RejectPost(ctx, editor, rejected.ID, "需要补充细节"))

	// 其他作者的博文不应混入。
	env.mustCreatePost(t, newAuthorIdentity(), "Not Mine")

	t.Run("作者可见自己全部状态的博文", func(t *testing.T) {
		list, err := env.listSvc.GetMyPosts(ctx, author, &dto.GetUserPostsRequestDTO{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, list.Total)
	})

	t.Run("按状态过滤且携带拒绝原因", func(t *testing.T) {
		status := int(enums.Rejected)
		list, err := env.listSvc.GetMyPosts(ctx, author, &dto.GetUserPostsRequestDTO{Status: &status})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
		require.Len(t, list.Posts, 1)
		require.NotNil(t, list.Posts[0].RejectionReason)
		assert.Equal(t, "需要补充细节", *list.Posts[0].RejectionReason)
	})
}
