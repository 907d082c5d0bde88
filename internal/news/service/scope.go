package service

import (
	"strings"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/common"
)

// ScopeFor derives the cache scope of a request: query:<q>, category:<c> or all.
func ScopeFor(req dto.FetchNewsRequest) string {
	if q := strings.ToLower(strings.TrimSpace(req.Query)); q != "" {
		return common.ScopeQueryPrefix + q
	}
	if c := categoryFilter(req.Category); c != "" {
		return common.ScopeCategoryPrefix + c
	}
	return common.ScopeAll
}

// RequestForScope rebuilds a forced request that refreshes scope.
func RequestForScope(scope string) dto.FetchNewsRequest {
	req := dto.FetchNewsRequest{ForceRefresh: true}
	switch {
	case strings.HasPrefix(scope, common.ScopeQueryPrefix):
		req.Query = strings.TrimPrefix(scope, common.ScopeQueryPrefix)
	case strings.HasPrefix(scope, common.ScopeCategoryPrefix):
		req.Category = strings.TrimPrefix(scope, common.ScopeCategoryPrefix)
	}
	return req
}

// categoryFilter normalizes a requested category; "All" and blanks mean no filter.
// Unknown categories are kept verbatim so the provider can map them to its general topic.
func categoryFilter(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return ""
	}
	if c, ok := entity.ParseCategory(category); ok {
		return string(c)
	}
	return category
}

// ClampMax bounds the requested article count to [1, 25], defaulting to 25.
func ClampMax(max int) int {
	switch {
	case max <= 0:
		return common.MaxArticlesPerRequest
	case max > common.MaxArticlesPerRequest:
		return common.MaxArticlesPerRequest
	default:
		return max
	}
}
