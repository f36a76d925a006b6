package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/entities"
)

func TestAuthorService_GetAuthorByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := newAuthorIdentity()
	env.mustRegisterAuthor(t, alice, "alice")

	t.Run("已同步的作者返回展示信息", func(t *testing.T) {
		author, err := env.authorSvc.GetAuthorByID(ctx, alice.UserID)
		require.NoError(t, err)
		require.NotNil(t, author)
		assert.Equal(t, "alice", author.Username)
	})

	t.Run("未知作者不是错误", func(t *testing.T) {
		author, err := env.authorSvc.GetAuthorByID(ctx, "unknown-user-id")
		require.NoError(t, err)
		assert.Nil(t, author)
	})
}

func TestAuthorService_ResolveAuthors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := newAuthorIdentity()
	bob := newAuthorIdentity()
	env.mustRegisterAuthor(t, alice, "alice")
	env.mustRegisterAuthor(t, bob, "bob")

	posts := []*entities.Post{
		{AuthorID: alice.UserID},
		{AuthorID: alice.UserID}, // 同一作者多篇，解析应去重
		{AuthorID: bob.UserID},
		{AuthorID: "ghost-author"}, // 读模型尚未同步
		{AuthorID: ""},
	}

	authors, err := env.authorSvc.ResolveAuthors(ctx, posts)
	require.NoError(t, err)

	assert.Len(t, authors, 2)
	require.Contains(t, authors, alice.UserID)
	assert.Equal(t, "alice", authors[alice.UserID].Username)
	require.Contains(t, authors, bob.UserID)
	assert.NotContains(t, authors, "ghost-author")
}

func TestAuthorService_ResolveAuthors_Empty(t *testing.T) {
	env := newTestEnv(t)

	authors, err := env.authorSvc.ResolveAuthors(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, authors)
}
