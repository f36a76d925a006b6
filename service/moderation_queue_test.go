package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestModerationQueueService_GetQueue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	editor := newEditorIdentity()

	alice := newAuthorIdentity()
	bob := newAuthorIdentity()
	env.mustRegisterAuthor(t, alice, "alice")
	// bob 的资料尚未从用户服务同步过来。

	first := env.mustCreatePost(t, alice, "Queue First In")
	second := env.mustCreatePost(t, bob, "Queue Second In")
	published := env.mustPublishPost(t, alice, editor, "Queue Published")
	_, err := env.revisionSvc.SubmitRevision(ctx, alice, published.ID, revisionRequest("Queue Published v2"))
	require.NoError(t, err)

	t.Run("作者无权查看审核队列", func(t *testing.T) {
		_, err := env.queueSvc.GetQueue(ctx, alice, PartitionSubmissions, 0, 10)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("初次投稿分区按先到先审排序", func(t *testing.T) {
		queue, err := env.queueSvc.GetQueue(ctx, editor, PartitionSubmissions, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, queue.Total)
		require.Len(t, queue.Items, 2)

		assert.Equal(t, first.ID, queue.Items[0].Post.ID)
		assert.Equal(t, second.ID, queue.Items[1].Post.ID)
		assert.Equal(t, "submission", queue.Items[0].Kind)

		// 已同步的作者带展示信息，未同步的为空。
		require.NotNil(t, queue.Items[0].Author)
		assert.Equal(t, "alice", queue.Items[0].Author.Username)
		assert.Nil(t, queue.Items[1].Author)
	})

	t.Run("修订稿分区只含挂有覆盖层的已发布博文", func(t *testing.T) {
		queue, err := env.queueSvc.GetQueue(ctx, editor, PartitionRevisions, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, queue.Total)
		require.Len(t, queue.Items, 1)
		assert.Equal(t, published.ID, queue.Items[0].Post.ID)
		assert.Equal(t, "revision", queue.Items[0].Kind)
	})

	t.Run("未知分区按输入错误处理", func(t *testing.T) {
		_, err := env.queueSvc.GetQueue(ctx, editor, QueuePartition("bogus"), 0, 10)
		assert.ErrorIs(t, err, myErrors.ErrValidation)
	})
}

func TestModerationQueueService_QueueStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	editor := newEditorIdentity()
	author := newAuthorIdentity()

	env.mustCreatePost(t, author, "Stats Pending One")
	env.mustCreatePost(t, author, "Stats Pending Two")
	published := env.mustPublishPost(t, author, editor, "Stats Published")
	_, err := env.revisionSvc.SubmitRevision(ctx, author, published.ID, revisionRequest("Stats Published v2"))
	require.NoError(t, err)
	rejected := env.mustCreatePost(t, author, "Stats Rejected")
	require.NoError(t, env.adminSvc.RejectPost(ctx, editor, rejected.ID, "不合适"))

	t.Run("作者无权查看看板", func(t *testing.T) {
		_, err := env.queueSvc.GetQueueStats(ctx, author)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("缓存未命中时回源重算并写回", func(t *testing.T) {
		stats, err := env.queueSvc.GetQueueStats(ctx, editor)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.PendingSubmissions)
		assert.EqualValues(t, 1, stats.PendingRevisions)
		assert.EqualValues(t, 1, stats.Published)
		assert.EqualValues(t, 1, stats.Rejected)
		assert.False(t, stats.RefreshedAt.IsZero())
	})

	t.Run("后续读取命中快照，允许短暂陈旧", func(t *testing.T) {
		env.mustCreatePost(t, author, "Stats Pending Three")

		stats, err := env.queueSvc.GetQueueStats(ctx, editor)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.PendingSubmissions, "快照未过期前不反映新投稿")
	})

	t.Run("定时刷新覆盖旧快照", func(t *testing.T) {
		stats, err := env.queueSvc.RefreshQueueStats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.PendingSubmissions)

		cached, err := env.queueSvc.GetQueueStats(ctx, editor)
		require.NoError(t, err)
		assert.EqualValues(t, 3, cached.PendingSubmissions)
	})
}

func TestPostAdminService_ListPostsByCondition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	editor := newEditorIdentity()
	author := newAuthorIdentity()

	env.mustCreatePost(t, author, "Filter Alpha")
	published := env.mustPublishPost(t, author, editor, "Filter Beta")
	_, err := env.revisionSvc.SubmitRevision(ctx, author, published.ID, revisionRequest("Filter Beta v2"))
	require.NoError(t, err)

	t.Run("作者无权使用管理端列表", func(t *testing.T) {
		_, err := env.adminSvc.ListPostsByCondition(ctx, author, &dto.ListPostsByConditionRequest{Page: 1, PageSize: 10})
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("按覆盖层标记过滤", func(t *testing.T) {
		hasOverlay := true
		list, err := env.adminSvc.ListPostsByCondition(ctx, editor, &dto.ListPostsByConditionRequest{
			HasDraftOverlay: &hasOverlay,
			Page:            1,
			PageSize:        10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
		require.Len(t, list.Posts, 1)
		assert.Equal(t, published.ID, list.Posts[0].ID)
	})

	t.Run("按标题模糊匹配", func(t *testing.T) {
		title := "Alpha"
		list, err := env.adminSvc.ListPostsByCondition(ctx, editor, &dto.ListPostsByConditionRequest{
			Title:    &title,
			Page:     1,
			PageSize: 10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)
	})
}
