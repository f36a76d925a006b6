package myErrors

import "errors"

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// ErrValidation 表示输入缺失或为空等校验失败
// - 具体缺失的字段由包装信息给出，调用方用 errors.Is 判断类别
var ErrValidation = errors.New("validation: missing or empty required field")

// ErrForbidden 表示调用者的角色/归属不满足该操作的前置条件
var ErrForbidden = errors.New("auth: caller is not permitted to perform this operation")

// ErrInvalidTransition 表示博文当前状态不允许请求的状态迁移
var ErrInvalidTransition = errors.New("post: current status does not permit this transition")

// ErrNoPendingRevision 表示对没有草稿覆盖层的博文执行了覆盖层操作
var ErrNoPendingRevision = errors.New("revision: post has no pending draft overlay")
