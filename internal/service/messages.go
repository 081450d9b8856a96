package service

// 对外提示文案
const (
	msgAuthorRequired   = "Author access required"
	msgCategoryNotFound = "Category not found"
	msgCategoryExists   = "Category with this name already exists"
	msgBlogNotFound     = "Blog not found"
)
