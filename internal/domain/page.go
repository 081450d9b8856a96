package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest 页码从 1 开始
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePage 非法或非正数回落到默认值，limit 上限 MaxLimit
func ParsePage(page, limit string) PageRequest {
	return NewPageRequest(atoiDefault(page, DefaultPage), atoiDefault(limit, DefaultLimit))
}

func NewPageRequest(page, limit int) PageRequest {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// offset 限制在 int32 内，各驱动都能接受且不会溢出
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
		return v
	}
	return def
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
	HasNextPage bool
	HasPrevPage bool

	noun string // totalBlogs / totalUsers ...
}

func NewPagination(req PageRequest, total int64, noun string) Pagination {
	pages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Pagination{
		CurrentPage: req.Page,
		TotalPages:  pages,
		Total:       total,
		HasNextPage: req.Page < pages,
		HasPrevPage: req.Page > 1,
		noun:        noun,
	}
}

func (p Pagination) MarshalJSON() ([]byte, error) {
	totalKey := "total"
	if p.noun != "" {
		totalKey += strings.ToUpper(p.noun[:1]) + p.noun[1:]
	}
	return json.Marshal(map[string]any{
		"currentPage": p.CurrentPage,
		"totalPages":  p.TotalPages,
		totalKey:      p.Total,
		"hasNextPage": p.HasNextPage,
		"hasPrevPage": p.HasPrevPage,
	})
}

// Page 列表响应：{"<key>": [...], "pagination": {...}}
type Page[T any] struct {
	Items      []T
	Pagination Pagination
	key        string
}

func NewPage[T any](key string, items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: NewPagination(req, total, key), key: key}
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(map[string]any{p.key: items, "pagination": p.Pagination})
}
