package service

import (
	"context"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/models/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func revisionRequest(title string) *dto.SubmitRevisionRequest {
	return &dto.SubmitRevisionRequest{
		Title:    title,
		Excerpt:  "修订后的摘要",
		Body:     "修订后的正文 revised body with more words",
		Category: "engineering",
		Tags:     []string{"go", "revision"},
	}
}

func TestRevisionService_SubmitRevision_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	t.Run("待审核博文不能提交修订稿", func(t *testing.T) {
		created := env.mustCreatePost(t, author, "Still Pending")
		_, err := env.revisionSvc.SubmitRevision(ctx, author, created.ID, revisionRequest("Still Pending v2"))
		assert.ErrorIs(t, err, myErrors.ErrInvalidTransition)
	})

	t.Run("非作者本人不能提交", func(t *testing.T) {
		post := env.mustPublishPost(t, author, editor, "Someone Elses Post")
		_, err := env.revisionSvc.SubmitRevision(ctx, newAuthorIdentity(), post.ID, revisionRequest("Hijack"))
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("内容契约与投稿一致，摘要与分类都不能为空", func(t *testing.T) {
		post := env.mustPublishPost(t, author, editor, "Valid Target")

		req := revisionRequest("Valid Target v2")
		req.Category = ""
		_, err := env.revisionSvc.SubmitRevision(ctx, author, post.ID, req)
		assert.ErrorIs(t, err, myErrors.ErrValidation)

		req = revisionRequest("Valid Target v2")
		req.Excerpt = ""
		_, err = env.revisionSvc.SubmitRevision(ctx, author, post.ID, req)
		assert.ErrorIs(t, err, myErrors.ErrValidation)

		// 校验失败的提交不应挂上覆盖层。
		assert.Nil(t, env.mustGetDetail(t, post.ID).DraftOverlay)
	})
}

func TestRevisionService_OverlayRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	post := env.mustPublishPost(t, author, editor, "Live Article")
	require.NotNil(t, post.PublishedAt)
	publishedAt := *post.PublishedAt
	liveBody := env.mustGetDetail(t, post.ID).Body

	// 1. 提交覆盖层：对外内容保持不变。
	rev, err := env.revisionSvc.SubmitRevision(ctx, author, post.ID, revisionRequest("Live Article Reworked"))
	require.NoError(t, err)
	assert.Equal(t, "live-article-reworked", rev.Slug)
	assert.Greater(t, rev.WordCount, 0)

	live := env.mustGetPost(t, post.ID)
	assert.Equal(t, "Live Article", live.Title, "覆盖层挂载后对外标题不变")
	assert.True(t, live.HasDraftOverlay)

	detail := env.mustGetDetail(t, post.ID)
	assert.Equal(t, liveBody, detail.Body, "覆盖层挂载后对外正文不变")
	require.NotNil(t, detail.DraftOverlay)
	assert.Equal(t, "Live Article Reworked", detail.DraftOverlay.Title)

	// 2. 批准覆盖层：全部字段一次性落地，发布时间不变。
	require.NoError(t, env.revisionSvc.ApproveRevision(ctx, editor, post.ID))

	merged := env.mustGetPost(t, post.ID)
	assert.Equal(t, "Live Article Reworked", merged.Title)
	assert.Equal(t, "live-article-reworked", merged.Slug)
	assert.Equal(t, enums.Approved, merged.Status)
	assert.False(t, merged.HasDraftOverlay)
	require.NotNil(t, merged.PublishedAt)
	assert.WithinDuration(t, publishedAt, *merged.PublishedAt, time.Second,
		"内容替换不是重新发布，发布时间应保持不变")

	mergedDetail := env.mustGetDetail(t, post.ID)
	assert.Equal(t, "修订后的正文 revised body with more words", mergedDetail.Body)
	assert.Nil(t, mergedDetail.DraftOverlay)

	// 3. 覆盖层已被消费，重复批准与丢弃都应失败。
	assert.ErrorIs(t, env.revisionSvc.ApproveRevision(ctx, editor, post.ID), myErrors.ErrNoPendingRevision)
	assert.ErrorIs(t, env.revisionSvc.RejectRevision(ctx, editor, post.ID), myErrors.ErrNoPendingRevision)
}

func TestRevisionService_RejectRevision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	post := env.mustPublishPost(t, author, editor, "Keep It As Is")
	liveBody := env.mustGetDetail(t, post.ID).Body

	_, err := env.revisionSvc.SubmitRevision(ctx, author, post.ID, revisionRequest("Keep It As Is v2"))
	require.NoError(t, err)

	t.Run("作者没有审核覆盖层的能力", func(t *testing.T) {
		assert.ErrorIs(t, env.revisionSvc.RejectRevision(ctx, author, post.ID), myErrors.ErrForbidden)
	})

	t.Run("丢弃覆盖层不影响对外内容", func(t *testing.T) {
		// 与初次投稿的拒绝不同，丢弃覆盖层不要求附原因。
		require.NoError(t, env.revisionSvc.RejectRevision(ctx, editor, post.ID))

		live := env.mustGetPost(t, post.ID)
		assert.Equal(t, "Keep It As Is", live.Title)
		assert.Equal(t, enums.Approved, live.Status)
		assert.False(t, live.HasDraftOverlay)

		detail := env.mustGetDetail(t, post.ID)
		assert.Equal(t, liveBody, detail.Body)
		assert.Nil(t, detail.DraftOverlay)
	})

	t.Run("重复丢弃应失败", func(t *testing.T) {
		assert.ErrorIs(t, env.revisionSvc.RejectRevision(ctx, editor, post.ID), myErrors.ErrNoPendingRevision)
	})
}

func TestRevisionService_ResubmitOverwritesOverlay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	post := env.mustPublishPost(t, author, editor, "Iterated Draft")

	_, err := env.revisionSvc.SubmitRevision(ctx, author, post.ID, revisionRequest("First Attempt"))
	require.NoError(t, err)
	_, err = env.revisionSvc.SubmitRevision(ctx, author, post.ID, revisionRequest("Second Attempt"))
	require.NoError(t, err)

	// 覆盖层是整体替换稿，后写胜出。
	detail := env.mustGetDetail(t, post.ID)
	require.NotNil(t, detail.DraftOverlay)
	assert.Equal(t, "Second Attempt", detail.DraftOverlay.Title)
}

func TestPostAdminRepository_ConsumeDraftOverlay_SingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	post := env.mustPublishPost(t, author, editor, "Contended Overlay")
	_, err := env.revisionSvc.SubmitRevision(ctx, author, post.ID, revisionRequest("Contended Overlay v2"))
	require.NoError(t, err)

	// 覆盖层标记写进 WHERE，同一覆盖层只能被消费一次。
	rows, err := env.adminRepo.ConsumeDraftOverlay(ctx, env.db, post.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = env.adminRepo.ConsumeDraftOverlay(ctx, env.db, post.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows, "竞争失败的一方不应产生任何更新")

	assert.False(t, env.mustGetPost(t, post.ID).HasDraftOverlay)
}

func TestPostAdminService_Unpublish_PreservesOverlay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()
	editor := newEditorIdentity()

	post := env.mustPublishPost(t, author, editor, "Taken Down")
	_, err := env.revisionSvc.SubmitRevision(ctx, author, post.ID, revisionRequest("Taken Down v2"))
	require.NoError(t, err)

	// 1. 下架：回到待审核，覆盖层保留但进入休眠。
	require.NoError(t, env.adminSvc.UnpublishPost(ctx, editor, post.ID))

	down := env.mustGetPost(t, post.ID)
	assert.Equal(t, enums.Pending, down.Status)
	assert.True(t, down.HasDraftOverlay, "下架不丢作者已提交的修订稿")
	require.NotNil(t, env.mustGetDetail(t, post.ID).DraftOverlay)

	// 2. 休眠期间覆盖层不接受审核操作。
	assert.ErrorIs(t, env.revisionSvc.ApproveRevision(ctx, editor, post.ID), myErrors.ErrInvalidTransition)
	assert.ErrorIs(t, env.revisionSvc.RejectRevision(ctx, editor, post.ID), myErrors.ErrInvalidTransition)

	// 3. 重新批准发布后，休眠的覆盖层恢复可审。
	require.NoError(t, env.adminSvc.ApprovePost(ctx, editor, post.ID))
	require.NoError(t, env.revisionSvc.ApproveRevision(ctx, editor, post.ID))
	assert.Equal(t, "Taken Down v2", env.mustGetPost(t, post.ID).Title)
}

func TestPostAdminService_Unpublish_OnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	editor := newEditorIdentity()

	created := env.mustCreatePost(t, newAuthorIdentity(), "Never Published")
	assert.ErrorIs(t, env.adminSvc.UnpublishPost(ctx, editor, created.ID), myErrors.ErrInvalidTransition)
}
