package service

import "errors"

// 领域错误, 调用方通过 errors.Is 区分
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("分类不存在")
	// ErrArticleNotFound 文章不存在
	ErrArticleNotFound = errors.New("文章不存在")
	// ErrCommentNotFound 评论不存在
	ErrCommentNotFound = errors.New("评论不存在")
	// ErrTagNotFound 标签不存在
	ErrTagNotFound = errors.New("标签不存在")
	// ErrLinkNotFound 友情链接不存在
	ErrLinkNotFound = errors.New("友情链接不存在")
	// ErrSideBarNotFound 侧边栏不存在
	ErrSideBarNotFound = errors.New("侧边栏不存在")
	// ErrSettingsNotFound 站点设置不存在
	ErrSettingsNotFound = errors.New("站点设置不存在")

	// ErrDuplicateTitle 文章标题已存在
	ErrDuplicateTitle = errors.New("文章标题已存在")
	// ErrDuplicateName 名称已存在
	ErrDuplicateName = errors.New("名称已存在")
	// ErrDuplicateSequence 排序号已存在
	ErrDuplicateSequence = errors.New("排序号已存在")

	// ErrMissingCategory 文章所属分类不存在
	ErrMissingCategory = errors.New("文章所属分类不存在")

	// ErrCyclicHierarchy 分类父子关系存在环
	ErrCyclicHierarchy = errors.New("分类父子关系存在环")

	// ErrSingletonViolation 站点设置只允许存在一条记录
	ErrSingletonViolation = errors.New("站点设置只允许存在一条记录")

	// ErrCommentClosed 文章已关闭评论
	ErrCommentClosed = errors.New("文章已关闭评论")
	// ErrCommentParentMismatch 不能回复其他文章的评论
	ErrCommentParentMismatch = errors.New("不能回复其他文章的评论")
	// ErrCommentTooDeep 评论回复层级过深
	ErrCommentTooDeep = errors.New("评论回复层级过深")
	// ErrCyclicComment 评论回复关系存在环
	ErrCyclicComment = errors.New("评论回复关系存在环")
)
