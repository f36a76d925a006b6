package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// Slugify 从标题派生 URL slug。
// - 全部转为小写；连续的非字母数字字符折叠为单个连字符；去掉首尾连字符。
// - 标题派生不出任何字母数字时返回空串，由调用方决定兜底。
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // 抑制开头的连字符
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomSlugSuffix 生成冲突兜底用的随机后缀。
func randomSlugSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugSuffixAlphabet[rand.Intn(len(slugSuffixAlphabet))]
	}
	return string(b)
}

// SlugAllocator 负责为博文分配唯一 slug。
type SlugAllocator interface {
	// Allocate 由标题派生 slug，冲突时追加随机后缀。
	// - excludeID 用于标题编辑场景排除博文自身占用，新建时传 0。
	// - 追加后缀后不再二次查重：后缀空间足够大，碰撞概率可忽略，
	//   且 slug 列不是唯一约束，最坏情况是并发下出现一次可修复的重复。
	Allocate(ctx context.Context, title string, excludeID uint64) (string, error)
}

// slugAllocator 是 SlugAllocator 的默认实现，占用判断走博文主表。
type slugAllocator struct {
	postRepo mysql.PostRepository
	logger   *core.ZapLogger
}

// NewSlugAllocator 是 slugAllocator 的构造函数。
func NewSlugAllocator(postRepo mysql.PostRepository, logger *core.ZapLogger) SlugAllocator {
	return &slugAllocator{
		postRepo: postRepo,
		logger:   logger,
	}
}

// Allocate 实现 slug 分配。
func (a *slugAllocator) Allocate(ctx context.Context, title string, excludeID uint64) (string, error) {
	base := Slugify(title)
	if base == "" {
		// 标题全是符号或空白，直接用随机串兜底。
		base = randomSlugSuffix(constant.SlugSuffixLength)
	}

	exists, err := a.postRepo.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("检查 slug 占用失败: %w", err)
	}
	if !exists {
		return base, nil
	}

	allocated := fmt.Sprintf("%s-%s", base, randomSlugSuffix(constant.SlugSuffixLength))
	a.logger.Info("slug 冲突，追加随机后缀",
		zap.String("base", base),
		zap.String("allocated", allocated),
	)
	return allocated, nil
}
