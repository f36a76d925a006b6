package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/constant"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"普通英文标题", "Hello, World!", "hello-world"},
		{"数字与点号", "Go 1.22 Release Notes", "go-1-22-release-notes"},
		{"大写折叠为小写", "UPPER Case TITLE", "upper-case-title"},
		{"连续分隔符折叠", "a  --  b", "a-b"},
		{"首尾分隔符去除", "  !trailing stuff!  ", "trailing-stuff"},
		{"纯符号", "!!!---???", ""},
		{"纯中文", "你好世界", ""},
		{"中英混排只留英文", "深入理解 Gin Middleware", "gin-middleware"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugAllocator_Allocate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := newAuthorIdentity()

	t.Run("无冲突时直接使用派生结果", func(t *testing.T) {
		allocator := NewSlugAllocator(env.postRepo, testLogger(t))
		slug, err := allocator.Allocate(ctx, "A Fresh Title", 0)
		require.NoError(t, err)
		assert.Equal(t, "a-fresh-title", slug)
	})

	t.Run("冲突时追加随机后缀", func(t *testing.T) {
		created := env.mustCreatePost(t, author, "Duplicate Title")
		require.Equal(t, "duplicate-title", created.Slug)

		allocator := NewSlugAllocator(env.postRepo, testLogger(t))
		slug, err := allocator.Allocate(ctx, "Duplicate Title", 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(slug, "duplicate-title-"))
		assert.Len(t, slug, len("duplicate-title")+1+constant.SlugSuffixLength)
	})

	t.Run("编辑场景排除博文自身的占用", func(t *testing.T) {
		created := env.mustCreatePost(t, author, "Self Owned Slug")

		allocator := NewSlugAllocator(env.postRepo, testLogger(t))
		slug, err := allocator.Allocate(ctx, "Self Owned Slug", created.ID)
		require.NoError(t, err)
		assert.Equal(t, "self-owned-slug", slug)
	})

	t.Run("标题派生不出字母数字时用随机串兜底", func(t *testing.T) {
		allocator := NewSlugAllocator(env.postRepo, testLogger(t))
		slug, err := allocator.Allocate(ctx, "！！！", 0)
		require.NoError(t, err)
		assert.Len(t, slug, constant.SlugSuffixLength)
	})
}
