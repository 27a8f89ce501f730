package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultSortBy = "createdAt"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// PageRequest is a normalized page/limit/sort request. Page and Limit are always >= 1.
type PageRequest struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir SortDir
}

// NewPageRequest clamps page and limit to at least 1 and limit to at most MaxLimit.
func NewPageRequest(page, limit int, sortBy, sortType string) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	dir := SortDesc
	if strings.EqualFold(strings.TrimSpace(sortType), string(SortAsc)) {
		dir = SortAsc
	}
	return PageRequest{Page: page, Limit: limit, SortBy: sortBy, SortDir: dir}
}

// ParsePageRequest reads raw query values. Absent values take the defaults;
// present but non-numeric or non-positive values clamp to 1.
func ParsePageRequest(rawPage, rawLimit, sortBy, sortType string) PageRequest {
	return NewPageRequest(parsePositive(rawPage, DefaultPage), parsePositive(rawLimit, DefaultLimit), sortBy, sortType)
}

func parsePositive(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset is the number of items skipped before this page. Never negative.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// RequireSort rejects sort fields outside allowed.
func (p PageRequest) RequireSort(allowed ...string) error {
	for _, a := range allowed {
		if p.SortBy == a {
			return nil
		}
	}
	return ErrValidationMeta("invalid query param", map[string]string{
		"sortBy": "must be one of: " + strings.Join(allowed, ", "),
	})
}

type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	if total < 0 {
		total = 0
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, req.Limit),
	}
}

// TotalPages is ceil(total/size), and 0 for an empty collection.
func TotalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	if size < 1 {
		size = 1
	}
	return (total + size - 1) / size
}

// Sort fields accepted per collection.
var (
	VideoSortFields    = []string{"createdAt", "updatedAt", "title", "duration", "views"}
	CommentSortFields  = []string{"createdAt", "updatedAt"}
	TweetSortFields    = []string{"createdAt", "updatedAt"}
	PlaylistSortFields = []string{"createdAt", "updatedAt", "name"}
	ChannelSortFields  = []string{"createdAt", "username"}
)
